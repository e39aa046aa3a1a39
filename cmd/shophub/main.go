package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/blob"
	"github.com/MadhaSivanandaReddy/ShopHub/internal/config"
	"github.com/MadhaSivanandaReddy/ShopHub/internal/domain"
	"github.com/MadhaSivanandaReddy/ShopHub/internal/logger"
	"github.com/MadhaSivanandaReddy/ShopHub/internal/source"
	"github.com/MadhaSivanandaReddy/ShopHub/internal/source/postgres"
	"github.com/MadhaSivanandaReddy/ShopHub/internal/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting ShopHub state layer demo",
		zap.String("env", cfg.Env),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("cart_blob_backend", cfg.Cart.BlobBackend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("Demo session failed", zap.Error(err))
	}

	log.Info("Demo session complete")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	blobs, err := newBlobStore(cfg)
	if err != nil {
		return err
	}

	src, cleanup, err := newProductSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// Composition root: explicit store instances, no globals.
	catalog := store.NewCatalog(log)
	cart := store.NewCart(ctx, blobs, log, store.WithStockPolicy(stockPolicy(cfg)))
	orders := store.NewOrders(log)
	session := store.NewSession(ctx, blobs, log)

	catalog.Subscribe(func(products []domain.Product) {
		log.Info("Catalog snapshot published", zap.Int("products", len(products)))
	})
	cart.Subscribe(func(c domain.Cart) {
		log.Info("Cart snapshot published",
			zap.Int("item_count", c.ItemCount),
			zap.Float64("total", c.Total),
		)
	})
	orders.Subscribe(func(os []domain.Order) {
		log.Info("Order snapshot published", zap.Int("orders", len(os)))
	})
	session.Subscribe(func(s store.Session) {
		log.Info("Session snapshot published", zap.Bool("signed_in", s.User != nil))
	})

	if err := catalog.Load(ctx, src); err != nil {
		return err
	}

	log.Info("Catalog ready",
		zap.Strings("categories", catalog.Categories()),
		zap.Int("featured", len(catalog.Featured())),
	)

	// Walk one storefront session end to end.
	user := domain.User{
		ID:        uuid.New(),
		Email:     "user@demo.com",
		FirstName: "John",
		LastName:  "Doe",
		Role:      domain.RoleCustomer,
	}
	if err := session.SignIn(ctx, user, uuid.New().String()); err != nil {
		return err
	}

	products := catalog.List()
	if len(products) == 0 {
		return fmt.Errorf("catalog source %q returned no products", cfg.Catalog.Source)
	}

	cart.AddItem(ctx, products[0], 1)
	cart.SetQuantity(ctx, products[0].ID, 3)

	order, err := orders.CreateOrder(cart.Snapshot(), user.ID, domain.Address{
		Street:  "1 Demo Street",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62701",
		Country: "USA",
	}, "credit_card")
	if err != nil {
		return err
	}

	// Checkout sequencing contract: the caller clears the cart, not the
	// order store.
	cart.Clear(ctx)

	if _, err := orders.SetStatus(order.ID, domain.OrderStatusProcessing); err != nil {
		return err
	}

	log.Info("Placed demo order",
		zap.String("order_id", order.ID.String()),
		zap.Float64("total", order.Total),
		zap.Int("lines", len(order.Items)),
	)

	session.SignOut(ctx)
	return nil
}

func newBlobStore(cfg *config.Config) (blob.Store, error) {
	switch cfg.Cart.BlobBackend {
	case "memory":
		return blob.NewMemory(), nil
	case "file":
		return blob.NewFile(cfg.Cart.BlobPath)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return blob.NewRedis(client, "shophub"), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Cart.BlobBackend)
	}
}

func newProductSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (source.ProductSource, func(), error) {
	switch cfg.Catalog.Source {
	case "fixture":
		return source.NewDemoFixture(), func() {}, nil
	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?search_path=%s",
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.Database,
			cfg.Database.Schema,
		)
		src, err := postgres.Open(dsn)
		if err != nil {
			return nil, nil, err
		}

		if err := src.Migrate(log); err != nil {
			src.Close()
			return nil, nil, err
		}

		// Seed the demo catalog on first run so the fetch has something
		// to return.
		existing, err := src.FetchProducts(ctx)
		if err == nil && len(existing) == 0 {
			fixture, _ := source.NewDemoFixture().FetchProducts(ctx)
			if err := src.Seed(ctx, fixture); err != nil {
				log.Warn("Failed to seed demo catalog", zap.Error(err))
			}
		}

		return src, func() { src.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

func stockPolicy(cfg *config.Config) store.StockPolicy {
	if cfg.Cart.StockPolicy == "enforced" {
		return store.StockEnforced
	}
	return store.StockAdvisory
}
