package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/commercekit/account/internal/config"
	"github.com/commercekit/account/persistence"
	"github.com/commercekit/account/user/account"
	accountGorm "github.com/commercekit/account/user/account/repository/gorm"
	accountService "github.com/commercekit/account/user/account/service"
	"github.com/commercekit/account/user/apikey"
	credentialService "github.com/commercekit/account/user/credential/service"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	// Missing .env is fine; config may come entirely from the yaml file
	_ = godotenv.Load()

	cfgPtr, err := config.New("accountctl", "yaml", "/etc/accountctl/")
	if err != nil {
		log.Panic(err)
	}
	cfg := *cfgPtr

	logger, err := newLogger(cfg)
	if err != nil {
		log.Panic(err)
	}
	defer logger.Sync()

	db, err := persistence.NewGorm(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	repository := accountGorm.NewGormAccountRepository(db)
	credentials := credentialService.NewCredentialService(cfg.Credential)
	accounts := accountService.NewAccountService(cfg.Account, repository, credentials, apikey.New(), clockwork.NewRealClock(), logger)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: accountctl <migrate|seed-admin>")
		os.Exit(2)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "migrate":
		// AutoMigrate already ran inside NewGorm when enabled
		logger.Info("migration complete")
	case "seed-admin":
		if err := seedAdmin(ctx, accounts, logger); err != nil {
			logger.Fatal("failed to seed admin account", zap.Error(err))
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
}

// seedAdmin creates a confirmed admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD unless one already exists.
func seedAdmin(ctx context.Context, accounts account.Service, logger *zap.Logger) error {
	exists, err := accounts.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("admin account already exists, nothing to do")
		return nil
	}
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	created, err := accounts.Create(ctx, account.Account{Email: email}, password)
	if err != nil {
		return err
	}
	if _, err := accounts.GrantRole(ctx, created.ID, account.RoleAdmin); err != nil {
		return err
	}
	if _, err := accounts.Confirm(ctx, created.ID); err != nil {
		return err
	}
	logger.Info("admin account created", zap.String("account_id", created.ID.String()))
	return nil
}

func newLogger(cfg config.Configuration) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Logger.JSON || cfg.Environment == config.Production {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Logger.Level)); err == nil {
		zcfg.Level = level
	}
	return zcfg.Build()
}
