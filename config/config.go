package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
)

// POS holds the tunables that used to be magic numbers in the terminal
// logic. Defaults match a single-location deployment; every value can
// be overridden from the environment.
type POS struct {
	// TaxRate is the flat sales tax applied to every ticket.
	TaxRate float64
	// DiscountAuthThreshold is the discount percent above which a
	// non-manager needs manager authorization.
	DiscountAuthThreshold float64
	// PINMinLen/PINMaxLen bound the digit buffer on PIN pads.
	PINMinLen int
	PINMaxLen int
	// InactivityTimeout logs an idle operator out of the register.
	InactivityTimeout time.Duration
	// AutoClockOutAfter force-closes a shift left running this long.
	AutoClockOutAfter time.Duration
	// SPLHInterval is how often the live SPLH figure is recomputed.
	SPLHInterval time.Duration
	// SPLHEligibleRoles are the roles whose hours count as labor.
	SPLHEligibleRoles []models.Role
}

func DefaultPOS() POS {
	return POS{
		TaxRate:               0.08,
		DiscountAuthThreshold: 20,
		PINMinLen:             4,
		PINMaxLen:             6,
		InactivityTimeout:     2 * time.Minute,
		AutoClockOutAfter:     9 * time.Hour,
		SPLHInterval:          time.Minute,
		SPLHEligibleRoles:     []models.Role{models.RoleCashier},
	}
}

// LoadPOS builds the POS config from defaults plus environment
// overrides.
func LoadPOS() POS {
	cfg := DefaultPOS()

	if v := os.Getenv("POS_TAX_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.TaxRate = f
		}
	}
	if v := os.Getenv("POS_DISCOUNT_AUTH_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.DiscountAuthThreshold = f
		}
	}
	if v := os.Getenv("POS_INACTIVITY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.InactivityTimeout = d
		}
	}
	if v := os.Getenv("POS_AUTO_CLOCKOUT_AFTER"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.AutoClockOutAfter = d
		}
	}
	if v := os.Getenv("POS_SPLH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SPLHInterval = d
		}
	}
	if v := os.Getenv("POS_SPLH_ROLES"); v != "" {
		var roles []models.Role
		for _, s := range strings.Split(v, ",") {
			if r, err := models.ParseRole(strings.TrimSpace(s)); err == nil {
				roles = append(roles, r)
			}
		}
		if len(roles) > 0 {
			cfg.SPLHEligibleRoles = roles
		}
	}

	return cfg
}

// InitDB opens the MySQL connection from DB_* environment variables.
func InitDB() (*gorm.DB, error) {
	host := envOr("DB_HOST", "127.0.0.1")
	port := envOr("DB_PORT", "3306")
	user := envOr("DB_USER", "root")
	pass := os.Getenv("DB_PASSWORD")
	name := envOr("DB_NAME", "restaurant_pos")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return db, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
