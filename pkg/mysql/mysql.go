package mysql

import (
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type Config struct {
	DSN             string `split_words:"true" required:"true"`
	MaxOpenConns    int    `split_words:"true" default:"8"`
	MaxIdleConns    int    `split_words:"true" default:"4"`
	ConnMaxLifetime int    `split_words:"true" default:"300"`
}

func (c *Config) New() (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", c.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime) * time.Second)

	return db, nil
}

func (c *Config) MustNew() *sqlx.DB {
	db, err := c.New()
	if err != nil {
		panic(err)
	}

	return db
}
