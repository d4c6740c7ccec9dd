// Package devops loads deployment configuration. Deployed environments
// keep the database catalog in the SSM parameter store as a yaml document;
// local runs use env vars instead and never touch this package.
package devops

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"gopkg.in/yaml.v3"
)

const databasesParam = "tempora-databases"

type DBEntry struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// GetDSN renders a go-sql-driver DSN against dbname. Hosts without an
// explicit port get the mysql default.
func (db DBEntry) GetDSN(dbname string) string {
	host := db.Host
	if !strings.Contains(host, ":") {
		host += ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", db.Username, db.Password, host, dbname)
}

var (
	once    sync.Once
	dbList  []DBEntry
	loadErr error
)

// LoadDBConfig fetches and caches the database catalog. The parameter is
// read once per process; a failed load stays failed.
func LoadDBConfig(ctx context.Context) ([]DBEntry, error) {
	once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		out, err := ssm.NewFromConfig(cfg).GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(databasesParam),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter %s: %w", databasesParam, err)
			return
		}

		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &dbList); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			dbList = nil
		}
	})

	return dbList, loadErr
}
