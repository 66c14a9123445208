package database

import (
	"time"

	"ShortVideo.com/cmd/model"
	"ShortVideo.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormopentracing "gorm.io/plugin/opentracing"
)

var DB *gorm.DB

// Init init DB
func Init() {
	var err error
	DB, err = Open(utils.GetMysqlDsn())
	if err != nil {
		panic(err)
	}
}

// Open 打开mysql连接 挂载链路追踪插件并迁移表结构
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
		},
	)
	if err != nil {
		return nil, errors.WithMessage(err, "gorm.Open failed")
	}
	if err = db.Use(gormopentracing.New()); err != nil {
		return nil, errors.WithMessage(err, "register opentracing plugin failed")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	hlog.Info("Starting tables migration...")
	if err := db.AutoMigrate(model.Tables()...); err != nil {
		hlog.Errorf("Failed to migrate tables: %v", err)
		return errors.WithMessage(err, "AutoMigrate failed")
	}
	hlog.Info("Tables migration completed successfully")
	return nil
}
