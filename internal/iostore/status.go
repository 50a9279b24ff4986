package iostore

import (
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/benchboard/schema"
	"github.com/jackc/pgx/v5"
)

// redactTarget describes a server connection without its credentials.
func redactTarget(backend schema.DatabaseBackend, connStr string) string {
	switch backend {
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return "mysql"
		}
		return fmt.Sprintf("%s/%s", cfg.Addr, cfg.DBName)
	case schema.PostgreSQLBackend:
		cfg, err := pgx.ParseConfig(connStr)
		if err != nil {
			return "postgresql"
		}
		return fmt.Sprintf("%s/%s", net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)), cfg.Database)
	default:
		return connStr
	}
}

// PrintStoreStatus prints record store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	if status.Target != "" {
		fmt.Printf("Target: %s\n", status.Target)
	}
	if status.Backend != string(schema.MemoryBackend) {
		fmt.Printf("Schema Version: %d\n", status.SchemaVersion)
	}
	fmt.Println("Table Sizes:")
	for _, v := range schema.AllVariants {
		fmt.Printf("  %s: %d rows\n", v.Table, status.Tables[v.Table])
	}
}
