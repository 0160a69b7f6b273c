package system

import (
	"fmt"

	"github.com/focusflowhq/focusflow/internal/keyring"
	"github.com/focusflowhq/focusflow/internal/storage/postgres"
)

type ConfigSetConnectionCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string (without an embedded password)."`
}

func (c *ConfigSetConnectionCmd) Run() error {
	if _, err := postgres.ValidateConnString(c.ConnStr); err != nil {
		return err
	}
	if err := keyring.SetConnectionString(c.ConnStr); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring")
	return nil
}

type ConfigClearConnectionCmd struct{}

func (c *ConfigClearConnectionCmd) Run() error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if err == keyring.ErrNotFound {
			fmt.Println("No connection string stored")
			return nil
		}
		return err
	}
	fmt.Println("Connection string removed from OS keyring")
	return nil
}
