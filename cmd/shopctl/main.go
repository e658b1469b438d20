package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/tgshop/miniapp-backend/internal/cart"
	"github.com/tgshop/miniapp-backend/internal/catalog"
	"github.com/tgshop/miniapp-backend/internal/checkout"
	"github.com/tgshop/miniapp-backend/pkg/config"
	"github.com/tgshop/miniapp-backend/pkg/db"
	"github.com/tgshop/miniapp-backend/pkg/logger"
	"github.com/tgshop/miniapp-backend/pkg/redis"
)

func main() {
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "shopctl", Output: os.Stderr})

	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.cmd, "cmd", "show", "command: products|show|add|remove|set|inc|dec|clear|delete|checkout")
	flag.Int64Var(&opts.id, "id", 0, "product id (add|remove|set|inc|dec)")
	flag.StringVar(&opts.ids, "ids", "", "comma separated product ids, or \"all\" (delete)")
	flag.IntVar(&opts.qty, "qty", 1, "quantity (set)")
	flag.StringVar(&opts.name, "name", "", "customer name (checkout)")
	flag.StringVar(&opts.phone, "phone", "", "customer phone, digits only (checkout)")
	flag.Int64Var(&opts.userID, "user-id", 0, "telegram user id (checkout)")
	flag.StringVar(&opts.username, "username", "", "telegram username (checkout)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "shopctl",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"cmd":          opts.cmd,
		"cart_storage": cfg.Cart.Storage,
	})

	storage, closeStorage, err := openStorage(ctx, cfg, logg)
	requireResource(ctx, logg, "cart storage", err)
	defer closeStorage()

	app := &shop{
		store: cart.Open(ctx, storage, cart.WithKey(cfg.Cart.Key), cart.WithLogger(logg)),
		out:   os.Stdout,
		logg:  logg,
	}

	if cfg.Shop.CatalogURL != "" {
		app.catalog, err = catalog.NewClient(cfg.Shop.CatalogURL)
		requireResource(ctx, logg, "catalog client", err)
	}

	relayClient, err := checkout.NewClient(cfg.Shop.RelayURL, checkout.WithTimeout(cfg.Shop.Timeout))
	requireResource(ctx, logg, "relay client", err)
	app.checkout, err = checkout.NewService(relayClient, logg)
	requireResource(ctx, logg, "checkout service", err)

	if err := app.run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", opts.cmd, err)
		os.Exit(1)
	}
}

func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (cart.Storage, func(), error) {
	switch cfg.Cart.Storage {
	case config.CartStorageMemory:
		return cart.NewMemoryStorage(), func() {}, nil
	case config.CartStorageRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, nil, err
		}
		return cart.NewRedisStorage(client), func() {
			if err := client.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}, nil
	default:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, nil, err
		}
		return cart.NewDBStorage(dbClient.DB()), func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(ctx, "error closing database", err)
			}
		}, nil
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "failed to initialize "+name, err)
	os.Exit(1)
}
