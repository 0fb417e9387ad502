// cmd/seed: Replaces the catalog with a JSON file and creates/updates the admin account.
// Uso: JWT_SECRET=... go run ./cmd/seed -file data/products.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Bastianbone18/trasera/internal/config"
	"github.com/Bastianbone18/trasera/internal/dto"
	"github.com/Bastianbone18/trasera/internal/infra"
	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/repository"
	"github.com/Bastianbone18/trasera/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	file := flag.String("file", "data/products.json", "JSON array of products")
	adminEmail := flag.String("admin-email", "admin@trasera.com", "admin account email")
	adminPassword := flag.String("admin-password", "admin1234", "admin account password")
	adminName := flag.String("admin-name", "Administrador", "admin account name")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	productos, err := leerProductos(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to read products")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer infra.CloseDatabase(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := repository.NewProductoRepository(db).ReplaceAll(ctx, productos); err != nil {
		log.Fatal().Err(err).Msg("failed to replace catalog")
	}
	log.Info().Int("productos", len(productos)).Msg("catálogo reemplazado")
	vaciarCache(ctx, cfg.RedisURL)

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}
	admin := &model.Usuario{
		Nombre:       *adminName,
		Email:        strings.ToLower(*adminEmail),
		PasswordHash: string(hash),
		Rol:          model.RolAdmin,
	}
	if err := repository.NewUsuarioRepository(db).Upsert(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("failed to upsert admin")
	}
	log.Info().Str("email", admin.Email).Msg("admin creado/actualizado")
}

// leerProductos decodes the seed file and applies the same defaults and
// checks as the API. The first invalid entry aborts the seed.
func leerProductos(path string) ([]model.Producto, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []dto.CrearProductoRequest
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	productos := make([]model.Producto, 0, len(items))
	for i, it := range items {
		p, err := service.NuevoProducto(it)
		if err != nil {
			return nil, fmt.Errorf("producto %d (%s %s): %w", i, it.Marca, it.Modelo, err)
		}
		productos = append(productos, *p)
	}
	return productos, nil
}

// vaciarCache drops the cached products of the old catalog. Redis is
// optional, so failures only warn.
func vaciarCache(ctx context.Context, redisURL string) {
	if redisURL == "" {
		return
	}
	rdb, err := infra.NewRedis(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, product cache not flushed")
		return
	}
	defer rdb.Close()

	n, err := service.VaciarCacheProductos(ctx, rdb)
	if err != nil {
		log.Warn().Err(err).Msg("failed to flush product cache")
		return
	}
	log.Info().Int("claves", n).Msg("caché de productos vaciada")
}
