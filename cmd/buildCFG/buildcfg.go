package buildCFG

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"

	"github.com/Rajesh001100/cultural/internal/mailer"
	"github.com/Rajesh001100/cultural/internal/service"
)

type ServerConfig struct {
	Port string
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "3000"
		log.Warn().Msg("server.port not set, defaulting to 3000")
	}
	return ServerConfig{Port: port}
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	host := cfg.GetString("db.host")
	port := cfg.GetString("db.port")
	user := cfg.GetString("db.user")
	password := cfg.GetString("db.password")
	name := cfg.GetString("db.name")
	if host == "" || user == "" || name == "" {
		return "", nil, nil, fmt.Errorf("db.host, db.user and db.name are required")
	}
	if port == "" {
		port = "5432"
	}

	masterDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, port, name)

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.GetInt("db.max_open_conns"),
		MaxIdleConns:    cfg.GetInt("db.max_idle_conns"),
		ConnMaxLifetime: time.Duration(cfg.GetInt("db.conn_max_lifetime_seconds")) * time.Second,
	}

	return masterDSN, nil, opts, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	rc := RabbitConfig{
		Url:      cfg.GetString("rabbit.url"),
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if rc.Url == "" {
		return rc, fmt.Errorf("rabbit.url is required")
	}
	if rc.Exchange == "" {
		rc.Exchange = "ticket-emails"
	}
	if rc.Queue == "" {
		rc.Queue = "ticket-emails"
	}
	return rc, nil
}

func BuildRazorpayConfig(cfg *config.Config, log *zerolog.Logger) (RazorpayConfig, error) {
	rc := RazorpayConfig{
		KeyID:     cfg.GetString("razorpay.key_id"),
		KeySecret: cfg.GetString("razorpay.key_secret"),
	}
	if rc.KeyID == "" || rc.KeySecret == "" {
		return rc, fmt.Errorf("razorpay.key_id and razorpay.key_secret are required")
	}
	return rc, nil
}

func BuildServiceConfig(cfg *config.Config, razorpay RazorpayConfig, log *zerolog.Logger) (service.Config, error) {
	sc := service.Config{
		JWTSecret:       cfg.GetString("admin.jwt_secret"),
		AdminUsername:   cfg.GetString("admin.username"),
		AdminPassword:   cfg.GetString("admin.password"),
		GatewaySecret:   razorpay.KeySecret,
		DefaultCurrency: cfg.GetString("razorpay.currency"),
	}
	if sc.JWTSecret == "" || sc.AdminUsername == "" || sc.AdminPassword == "" {
		return sc, fmt.Errorf("admin.jwt_secret, admin.username and admin.password are required")
	}
	return sc, nil
}

func BuildMailerConfig(cfg *config.Config, log *zerolog.Logger) (mailer.Config, error) {
	mc := mailer.Config{
		Host:         cfg.GetString("smtp.host"),
		Port:         cfg.GetString("smtp.port"),
		From:         cfg.GetString("smtp.from"),
		Password:     cfg.GetString("smtp.password"),
		ContactInbox: cfg.GetString("smtp.contact_inbox"),
		BaseURL:      cfg.GetString("server.base_url"),
	}
	if mc.Host == "" || mc.From == "" {
		return mc, fmt.Errorf("smtp.host and smtp.from are required")
	}
	if mc.Port == "" {
		mc.Port = "587"
	}
	if mc.ContactInbox == "" {
		mc.ContactInbox = mc.From
	}
	return mc, nil
}
