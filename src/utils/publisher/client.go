package publisher

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/fundflare/mirror/src/utils/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from the shared Redis section.
// Mutual TLS is enabled when all three PEM fields are set.
func NewRedisClient(redisConfig config.Redis, name string) (client *redis.Client, err error) {
	opts := redis.Options{
		ClientName:      fmt.Sprintf("fundflare/%s", name),
		Addr:            fmt.Sprintf("%s:%d", redisConfig.Host, redisConfig.Port),
		Password:        redisConfig.Password,
		Username:        redisConfig.User,
		DB:              redisConfig.DB,
		MinIdleConns:    redisConfig.MinIdleConns,
		MaxIdleConns:    redisConfig.MaxIdleConns,
		ConnMaxIdleTime: redisConfig.ConnMaxIdleTime,
		PoolSize:        redisConfig.MaxOpenConns,
		ConnMaxLifetime: redisConfig.ConnMaxLifetime,
	}

	if redisConfig.ClientCert != "" && redisConfig.ClientKey != "" && redisConfig.CaCert != "" {
		cert, err := tls.X509KeyPair([]byte(redisConfig.ClientCert), []byte(redisConfig.ClientKey))
		if err != nil {
			return nil, err
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM([]byte(redisConfig.CaCert)) {
			return nil, errors.New("failed to append CA cert to pool")
		}

		opts.TLSConfig = &tls.Config{
			InsecureSkipVerify: false,
			RootCAs:            caCertPool,
			ClientCAs:          caCertPool,
			Certificates:       []tls.Certificate{cert},
		}
	}

	return redis.NewClient(&opts), nil
}
