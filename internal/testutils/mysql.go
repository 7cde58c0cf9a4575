// Copyright 2025 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutils

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
)

var (
	mysqlTestContainerImage          = "mysql:8"
	mysqlTestContainerPort  nat.Port = "3306"
)

const (
	mysqlRootUser     = "root"
	mysqlRootPassword = testContainerPassword
)

// MySQLContainerSuite - runs a disposable MySQL instance for the suite. Migrations are
// executed by root.
type MySQLContainerSuite struct {
	suite.Suite
	Container     testcontainers.Container
	MigrationUp   []string
	MigrationDown []string
}

func (s *MySQLContainerSuite) SetupSuite() {
	ctx := context.Background()
	var err error
	s.Container, err = tcmysql.Run(
		ctx,
		mysqlTestContainerImage,
		tcmysql.WithDatabase(testContainerDatabase),
		tcmysql.WithUsername(testContainerUser),
		tcmysql.WithPassword(testContainerPassword),
		testcontainers.CustomizeRequestOption(
			func(req *testcontainers.GenericContainerRequest) error {
				req.Env["MYSQL_ROOT_PASSWORD"] = mysqlRootPassword
				return nil
			},
		),
	)
	s.Require().NoErrorf(err, "failed to start MySQL Container")

	s.migrate(ctx, s.MigrationUp, "failed to run up migration")
}

func (s *MySQLContainerSuite) TearDownSuite() {
	ctx := context.Background()
	s.migrate(ctx, s.MigrationDown, "failed to run down migration")
	err := s.Container.Terminate(ctx)
	s.Assert().NoErrorf(err, "failed to terminate MySQL Container")
}

func (s *MySQLContainerSuite) SetMigrationUp(sqls []string) *MySQLContainerSuite {
	s.MigrationUp = sqls
	return s
}

func (s *MySQLContainerSuite) SetMigrationDown(sqls []string) *MySQLContainerSuite {
	s.MigrationDown = sqls
	return s
}

func (s *MySQLContainerSuite) GetDatabase() string {
	return testContainerDatabase
}

func (s *MySQLContainerSuite) GetConnectionURI(ctx context.Context) string {
	return s.getConnectionURIWithUser(ctx, testContainerUser, testContainerPassword)
}

func (s *MySQLContainerSuite) getConnectionURIWithUser(ctx context.Context, username, password string) string {
	host, err := s.Container.Host(ctx)
	s.Require().NoErrorf(err, "failed to get Container host")
	port, err := s.Container.MappedPort(ctx, mysqlTestContainerPort)
	s.Require().NoErrorf(err, "failed to get Container port")
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true",
		username, password, host, port.Port(), testContainerDatabase,
	)
}

func (s *MySQLContainerSuite) migrate(ctx context.Context, sqls []string, failMsg string) {
	if len(sqls) == 0 {
		return
	}
	conn, err := sql.Open("mysql", s.getConnectionURIWithUser(ctx, mysqlRootUser, mysqlRootPassword))
	s.Require().NoErrorf(err, "failed to connect to MySQL")
	defer conn.Close()
	s.Require().NoErrorf(conn.PingContext(ctx), "failed to ping MySQL")
	for i, migration := range sqls {
		log.Info().
			Int("index", i).
			Msg("running migration")
		_, err = conn.ExecContext(ctx, migration)
		s.Require().NoErrorf(err, failMsg)
	}
}
