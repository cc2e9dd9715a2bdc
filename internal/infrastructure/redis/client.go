// Package redis construye el cliente usado por el limitador de tasa.
package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/logbook-api/pkg/config"
	"github.com/jhoicas/logbook-api/pkg/logger"
)

// NewClient crea el cliente y hace ping. Devuelve nil si Addr está vacío o Redis no responde:
// quien lo use debe degradar (sin limitador) en lugar de fallar el arranque.
func NewClient(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	var tlsConf *tls.Config
	if cfg.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConf,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis no disponible, limitador deshabilitado")
		_ = client.Close()
		return nil
	}
	return client
}
