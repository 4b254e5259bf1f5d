package db

import (
	"context"
	"fmt"

	"trackmate/internal/config"
	"trackmate/internal/mylogger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	ctx   context.Context
	cfg   *config.DBconfig
	mylog mylogger.Logger
	pool  *pgxpool.Pool
}

func New(ctx context.Context, dbCfg *config.DBconfig, mylog mylogger.Logger) (*DB, error) {
	d := &DB{
		cfg:   dbCfg,
		ctx:   ctx,
		mylog: mylog,
	}

	if err := d.connect(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *DB) Close() error {
	d.pool.Close()
	return nil
}

func (d *DB) IsAlive() error {
	if d.pool == nil {
		return fmt.Errorf("DB is not initialized")
	}
	return d.pool.Ping(d.ctx)
}

func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

func (d *DB) connect() error {
	pool, err := pgxpool.New(d.ctx, fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.cfg.User,
		d.cfg.Password,
		d.cfg.Host,
		d.cfg.Port,
		d.cfg.Database,
	))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}
	d.pool = pool
	return nil
}
