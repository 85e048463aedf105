package database

import (
	"context"

	"github.com/jinzhu/gorm"

	"lunchlink/internal/models"
)

// GormBackend implements the store's Backend over the GORM connection.
// GORM v1 carries no context; ctx is accepted to satisfy the interface
// and honored only as far as the driver allows.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend wraps a GORM connection as a store backend
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

// saveRecord upserts by string primary key. probe is an empty value of
// the record's type used for the existence check.
func saveRecord(db *gorm.DB, probe interface{}, id string, record interface{}) error {
	if db.Where("id = ?", id).First(probe).RecordNotFound() {
		return db.Create(record).Error
	}
	return db.Save(record).Error
}

func (b *GormBackend) FetchUsers(_ context.Context) ([]models.User, error) {
	var users []models.User
	err := b.db.Find(&users).Error
	return users, err
}

func (b *GormBackend) FetchCompanies(_ context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := b.db.Find(&companies).Error
	return companies, err
}

func (b *GormBackend) FetchDepartments(_ context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := b.db.Find(&departments).Error
	return departments, err
}

func (b *GormBackend) FetchMasterItems(_ context.Context) ([]models.MasterFoodItem, error) {
	var items []models.MasterFoodItem
	err := b.db.Find(&items).Error
	return items, err
}

func (b *GormBackend) FetchMenus(_ context.Context) ([]models.DailyMenu, error) {
	var menus []models.DailyMenu
	if err := b.db.Find(&menus).Error; err != nil {
		return nil, err
	}
	for i := range menus {
		// hydrate the transient item list; a corrupt row keeps an empty list
		_, _ = menus[i].GetItems()
	}
	return menus, nil
}

func (b *GormBackend) FetchTemplates(_ context.Context) ([]models.MenuTemplate, error) {
	var templates []models.MenuTemplate
	if err := b.db.Find(&templates).Error; err != nil {
		return nil, err
	}
	for i := range templates {
		_, _ = templates[i].GetItems()
	}
	return templates, nil
}

func (b *GormBackend) FetchOrders(_ context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := b.db.Find(&orders).Error
	return orders, err
}

func (b *GormBackend) FetchIssues(_ context.Context) ([]models.MenuIssue, error) {
	var issues []models.MenuIssue
	err := b.db.Find(&issues).Error
	return issues, err
}

func (b *GormBackend) FetchComments(_ context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := b.db.Find(&comments).Error; err != nil {
		return nil, err
	}
	for i := range comments {
		_, _ = comments[i].GetResponses()
	}
	return comments, nil
}

func (b *GormBackend) FetchAppConfig(_ context.Context) (*models.AppConfig, error) {
	var config models.AppConfig
	result := b.db.First(&config)
	if result.RecordNotFound() {
		return nil, nil
	}
	if err := result.Error; err != nil {
		return nil, err
	}
	return &config, nil
}

func (b *GormBackend) SaveUser(_ context.Context, user *models.User) error {
	return saveRecord(b.db, &models.User{}, user.ID, user)
}

func (b *GormBackend) DeleteUser(_ context.Context, id string) error {
	return b.db.Where("id = ?", id).Delete(&models.User{}).Error
}

func (b *GormBackend) SaveCompany(_ context.Context, company *models.Company) error {
	return saveRecord(b.db, &models.Company{}, company.ID, company)
}

func (b *GormBackend) DeleteCompany(_ context.Context, id string) error {
	return b.db.Where("id = ?", id).Delete(&models.Company{}).Error
}

func (b *GormBackend) SaveDepartment(_ context.Context, department *models.Department) error {
	return saveRecord(b.db, &models.Department{}, department.ID, department)
}

func (b *GormBackend) DeleteDepartment(_ context.Context, id string) error {
	return b.db.Where("id = ?", id).Delete(&models.Department{}).Error
}

func (b *GormBackend) SaveMasterItem(_ context.Context, item *models.MasterFoodItem) error {
	return saveRecord(b.db, &models.MasterFoodItem{}, item.ID, item)
}

func (b *GormBackend) DeleteMasterItem(_ context.Context, id string) error {
	return b.db.Where("id = ?", id).Delete(&models.MasterFoodItem{}).Error
}

func (b *GormBackend) SaveMenu(_ context.Context, menu *models.DailyMenu) error {
	return saveRecord(b.db, &models.DailyMenu{}, menu.ID, menu)
}

func (b *GormBackend) DeleteMenu(_ context.Context, id string) error {
	return b.db.Where("id = ?", id).Delete(&models.DailyMenu{}).Error
}

func (b *GormBackend) SaveTemplate(_ context.Context, template *models.MenuTemplate) error {
	return saveRecord(b.db, &models.MenuTemplate{}, template.ID, template)
}

func (b *GormBackend) DeleteTemplate(_ context.Context, id string) error {
	return b.db.Where("id = ?", id).Delete(&models.MenuTemplate{}).Error
}

func (b *GormBackend) SaveOrder(_ context.Context, order *models.Order) error {
	return saveRecord(b.db, &models.Order{}, order.ID, order)
}

func (b *GormBackend) SaveIssue(_ context.Context, issue *models.MenuIssue) error {
	return saveRecord(b.db, &models.MenuIssue{}, issue.ID, issue)
}

func (b *GormBackend) SaveComment(_ context.Context, comment *models.Comment) error {
	return saveRecord(b.db, &models.Comment{}, comment.ID, comment)
}

func (b *GormBackend) SaveAppConfig(_ context.Context, config *models.AppConfig) error {
	return saveRecord(b.db, &models.AppConfig{}, config.ID, config)
}
