// Package internal contiene la lógica interna del Bridge.
//
// El Bridge es una thin layer de orquestación: validación, mapeo y
// transformación viven en domain/; acá se cablean store, journal, HTTP y
// telemetría.
package internal

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// Config configuración del Bridge.
//
// Orden de resolución: defaults → etcd (namespace /bridge/{env}/, si hay
// endpoints configurados) → variables de entorno BRIDGE_*.
type Config struct {
	// HTTP
	HTTPPort int // bridge/http_port

	// Cola de órdenes pendientes
	QueueMode       QueueMode // bridge/queue_mode ("fifo" | "latest")
	AuditFilePath   string    // bridge/audit_file (vacío deshabilita el CSV)
	AuditBufferSize int       // bridge/audit_buffer_size

	// PostgreSQL (opcional; sin host el journal queda solo en CSV)
	PostgresHost     string // postgres/host
	PostgresPort     int    // postgres/port
	PostgresDatabase string // postgres/database
	PostgresUser     string // postgres/user
	PostgresPassword string // postgres/password
	PostgresSSLMode  string // postgres/sslmode

	// Telemetry
	ServiceName    string // telemetry/service_name
	ServiceVersion string // telemetry/service_version
	Environment    string // telemetry/environment
	OTLPEndpoint   string // endpoints/otel/otlp_endpoint
}

// DefaultConfig retorna la configuración por defecto.
func DefaultConfig() *Config {
	return &Config{
		HTTPPort:        5000,
		QueueMode:       QueueModeFIFO,
		AuditFilePath:   "trades.csv",
		AuditBufferSize: 1000,
		PostgresPort:    5432,
		PostgresSSLMode: "disable",
		ServiceName:     "bridge",
		ServiceVersion:  "0.1.0",
		Environment:     "development",
	}
}

// PostgresDSN arma el DSN lib/pq; vacío si Postgres no está configurado.
func (c *Config) PostgresDSN() string {
	if c.PostgresHost == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresDatabase,
		c.PostgresUser, c.PostgresPassword, c.PostgresSSLMode)
}

// LoadConfig carga configuración desde etcd y entorno.
//
// Environment se determina desde la variable BRIDGE_ENV (default:
// development). etcd es opcional: sin BRIDGE_ETCD_ENDPOINTS se usan
// defaults + overrides de entorno.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg := DefaultConfig()

	if env := os.Getenv("BRIDGE_ENV"); env != "" {
		cfg.Environment = env
	}

	if endpoints := os.Getenv("BRIDGE_ETCD_ENDPOINTS"); endpoints != "" {
		if err := cfg.loadFromEtcd(ctx, strings.Split(endpoints, ",")); err != nil {
			return nil, fmt.Errorf("failed to load config from etcd: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// loadFromEtcd sobreescribe la config con las claves presentes en el
// namespace /bridge/{environment}/.
func (c *Config) loadFromEtcd(ctx context.Context, endpoints []string) error {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("error creating etcd client: %w", err)
	}
	defer cli.Close()

	prefix := fmt.Sprintf("/bridge/%s/", c.Environment)
	getVar := func(key string) string {
		getCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		resp, err := cli.Get(getCtx, prefix+key)
		if err != nil || len(resp.Kvs) == 0 {
			return ""
		}
		return string(resp.Kvs[0].Value)
	}

	if val := getVar("bridge/http_port"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.HTTPPort = port
		}
	}
	if val := getVar("bridge/queue_mode"); val != "" {
		c.QueueMode = QueueMode(val)
	}
	if val := getVar("bridge/audit_file"); val != "" {
		c.AuditFilePath = val
	}
	if val := getVar("bridge/audit_buffer_size"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			c.AuditBufferSize = size
		}
	}
	if val := getVar("postgres/host"); val != "" {
		c.PostgresHost = val
	}
	if val := getVar("postgres/port"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.PostgresPort = port
		}
	}
	if val := getVar("postgres/database"); val != "" {
		c.PostgresDatabase = val
	}
	if val := getVar("postgres/user"); val != "" {
		c.PostgresUser = val
	}
	if val := getVar("postgres/password"); val != "" {
		c.PostgresPassword = val
	}
	if val := getVar("postgres/sslmode"); val != "" {
		c.PostgresSSLMode = val
	}
	if val := getVar("telemetry/service_name"); val != "" {
		c.ServiceName = val
	}
	if val := getVar("telemetry/service_version"); val != "" {
		c.ServiceVersion = val
	}
	if val := getVar("endpoints/otel/otlp_endpoint"); val != "" {
		c.OTLPEndpoint = val
	}

	return nil
}

// applyEnvOverrides aplica overrides BRIDGE_* por encima de etcd/defaults.
func (c *Config) applyEnvOverrides() {
	if val := os.Getenv("BRIDGE_HTTP_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.HTTPPort = port
		}
	}
	if val := os.Getenv("BRIDGE_QUEUE_MODE"); val != "" {
		c.QueueMode = QueueMode(val)
	}
	if val := os.Getenv("BRIDGE_AUDIT_FILE"); val != "" {
		c.AuditFilePath = val
	}
	if val := os.Getenv("BRIDGE_POSTGRES_HOST"); val != "" {
		c.PostgresHost = val
	}
	if val := os.Getenv("BRIDGE_POSTGRES_DSN_PASSWORD"); val != "" {
		c.PostgresPassword = val
	}
	if val := os.Getenv("BRIDGE_OTLP_ENDPOINT"); val != "" {
		c.OTLPEndpoint = val
	}
}

// Validate chequea coherencia básica de la config.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTPPort)
	}
	if c.QueueMode != QueueModeFIFO && c.QueueMode != QueueModeLatest {
		return fmt.Errorf("invalid queue mode: %q (expected fifo or latest)", c.QueueMode)
	}
	return nil
}
