package db

import (
	"github.com/go-sql-driver/mysql"

	"github.com/mydal-project/mydal/pkg/mydal"
)

// BuildDSN renders a driver DSN from the connection configuration.
// The DSN is always built through mysql.Config so credentials and parameters
// are escaped correctly; parseTime is forced on so DATE/DATETIME columns
// scan into time.Time.
func BuildDSN(config *mydal.ConnectionConfig) string {
	mc := mysql.NewConfig()
	mc.User = config.Username
	mc.Passwd = config.Password
	mc.Net = "tcp"
	mc.Addr = config.Addr()
	mc.DBName = config.Database
	mc.ParseTime = true

	mc.Timeout = config.DialTimeout
	if mc.Timeout == 0 {
		mc.Timeout = mydal.DefaultDialTimeout
	}

	if len(config.Params) > 0 {
		mc.Params = make(map[string]string, len(config.Params))
		for k, v := range config.Params {
			mc.Params[k] = v
		}
	}

	return mc.FormatDSN()
}
