// Package main 数据库初始化入口
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"shorts-script-api/internal/config"
	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/infrastructure/persistence/postgres"
	apperrors "shorts-script-api/pkg/errors"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化 PostgreSQL
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("failed to init postgres: %v", err)
	}
	defer func() { _ = client.Close() }()

	// 3. 迁移表结构
	fmt.Println("Running migrations...")
	if err := client.DB().WithContext(ctx).AutoMigrate(
		&entity.Credential{},
		&entity.GeneratedScript{},
		&entity.UserSession{},
		&entity.ReferenceExample{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	fmt.Println("Migrations completed.")

	// 4. 按需导入初始凭证（逗号分隔）
	repo := postgres.NewCredentialRepository(client)
	seedCredentials(ctx, repo, os.Getenv("BOOTSTRAP_GEMINI_KEYS"), entity.CredentialKindGemini)

	fmt.Println("Bootstrap completed successfully.")
}

func seedCredentials(ctx context.Context, repo *postgres.CredentialRepository, raw string, kind entity.CredentialKind) {
	if raw == "" {
		return
	}

	for _, value := range strings.Split(raw, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if !entity.ValidateCredentialValue(value, kind) {
			fmt.Printf("Skipping invalid %s credential.\n", kind)
			continue
		}

		cred := &entity.Credential{
			Value:  value,
			Kind:   kind,
			Active: true,
		}
		if err := repo.Create(ctx, cred); err != nil {
			if errors.Is(err, apperrors.ErrCredentialExists) {
				fmt.Printf("Credential already exists, skipping.\n")
				continue
			}
			log.Fatalf("failed to seed credential: %v", err)
		}
		fmt.Printf("Seeded %s credential %s\n", kind, cred.Masked())
	}
}
