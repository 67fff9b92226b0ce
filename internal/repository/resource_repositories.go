package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jasperjas06/live-sub000/internal/models"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}

func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("name ASC").Find(&projects).Error
	return projects, err
}

// MarketerRepository defines the interface for marketer data access
type MarketerRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Marketer, error)
	Create(ctx context.Context, marketer *models.Marketer) error
	Update(ctx context.Context, marketer *models.Marketer) error
	List(ctx context.Context) ([]models.Marketer, error)
}

type marketerRepository struct {
	db *gorm.DB
}

// NewMarketerRepository creates a new marketer repository
func NewMarketerRepository(db *gorm.DB) MarketerRepository {
	return &marketerRepository{db: db}
}

func (r *marketerRepository) FindByID(ctx context.Context, id uint) (*models.Marketer, error) {
	var marketer models.Marketer
	if err := r.db.WithContext(ctx).Joins("Director").First(&marketer, id).Error; err != nil {
		return nil, err
	}
	return &marketer, nil
}

func (r *marketerRepository) Create(ctx context.Context, marketer *models.Marketer) error {
	return r.db.WithContext(ctx).Create(marketer).Error
}

func (r *marketerRepository) Update(ctx context.Context, marketer *models.Marketer) error {
	return r.db.WithContext(ctx).Save(marketer).Error
}

func (r *marketerRepository) List(ctx context.Context) ([]models.Marketer, error) {
	var marketers []models.Marketer
	err := r.db.WithContext(ctx).Preload("Director").Order("name ASC").Find(&marketers).Error
	return marketers, err
}

// DirectorRepository defines the interface for director data access
type DirectorRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Director, error)
	Create(ctx context.Context, director *models.Director) error
	Update(ctx context.Context, director *models.Director) error
	List(ctx context.Context) ([]models.Director, error)
}

type directorRepository struct {
	db *gorm.DB
}

// NewDirectorRepository creates a new director repository
func NewDirectorRepository(db *gorm.DB) DirectorRepository {
	return &directorRepository{db: db}
}

func (r *directorRepository) FindByID(ctx context.Context, id uint) (*models.Director, error) {
	var director models.Director
	if err := r.db.WithContext(ctx).First(&director, id).Error; err != nil {
		return nil, err
	}
	return &director, nil
}

func (r *directorRepository) Create(ctx context.Context, director *models.Director) error {
	return r.db.WithContext(ctx).Create(director).Error
}

func (r *directorRepository) Update(ctx context.Context, director *models.Director) error {
	return r.db.WithContext(ctx).Save(director).Error
}

func (r *directorRepository) List(ctx context.Context) ([]models.Director, error) {
	var directors []models.Director
	err := r.db.WithContext(ctx).Order("name ASC").Find(&directors).Error
	return directors, err
}

// MODRepository defines the interface for MOD record data access
type MODRepository interface {
	FindByID(ctx context.Context, id uint) (*models.MODRecord, error)
	Create(ctx context.Context, record *models.MODRecord) error
	Update(ctx context.Context, record *models.MODRecord) error
	List(ctx context.Context, filter ListFilter) ([]models.MODRecord, error)
}

type modRepository struct {
	db *gorm.DB
}

// NewMODRepository creates a new MOD record repository
func NewMODRepository(db *gorm.DB) MODRepository {
	return &modRepository{db: db}
}

func (r *modRepository) FindByID(ctx context.Context, id uint) (*models.MODRecord, error) {
	var record models.MODRecord
	if err := r.db.WithContext(ctx).Joins("Customer").First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *modRepository) Create(ctx context.Context, record *models.MODRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *modRepository) Update(ctx context.Context, record *models.MODRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *modRepository) List(ctx context.Context, filter ListFilter) ([]models.MODRecord, error) {
	var records []models.MODRecord

	db := r.db.WithContext(ctx).Model(&models.MODRecord{})
	if filter.Status != "" {
		db = db.Where("mod_records.status = ?", filter.Status)
	}
	if filter.CustomerID > 0 {
		db = db.Where("mod_records.customer_id = ?", filter.CustomerID)
	}
	db = applyDateRange(db, filter)

	err := db.
		Preload("Customer").
		Order("mod_records.created_at DESC").
		Find(&records).Error
	return records, err
}

// EditRequestRepository defines the interface for edit request data access
type EditRequestRepository interface {
	FindByID(ctx context.Context, id uint) (*models.EditRequest, error)
	Create(ctx context.Context, request *models.EditRequest) error
	Update(ctx context.Context, request *models.EditRequest) error
	List(ctx context.Context, filter ListFilter) ([]models.EditRequest, error)
}

type editRequestRepository struct {
	db *gorm.DB
}

// NewEditRequestRepository creates a new edit request repository
func NewEditRequestRepository(db *gorm.DB) EditRequestRepository {
	return &editRequestRepository{db: db}
}

func (r *editRequestRepository) FindByID(ctx context.Context, id uint) (*models.EditRequest, error) {
	var request models.EditRequest
	err := r.db.WithContext(ctx).
		Joins("RequestedBy").
		Joins("DecidedByUser").
		First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *editRequestRepository) Create(ctx context.Context, request *models.EditRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *editRequestRepository) Update(ctx context.Context, request *models.EditRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *editRequestRepository) List(ctx context.Context, filter ListFilter) ([]models.EditRequest, error) {
	var requests []models.EditRequest

	db := r.db.WithContext(ctx).Model(&models.EditRequest{})
	if filter.Status != "" {
		db = db.Where("edit_requests.status = ?", filter.Status)
	}
	db = applyDateRange(db, filter)

	err := db.
		Preload("RequestedBy").
		Preload("DecidedByUser").
		Order("edit_requests.created_at DESC").
		Find(&requests).Error
	return requests, err
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Notification, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Notification, error)
	Create(ctx context.Context, notification *models.Notification) error
	Update(ctx context.Context, notification *models.Notification) error
	Delete(ctx context.Context, id uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Notification{}, id).Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now()).Error
}

// RefreshTokenRepository defines the interface for refresh token data access
type RefreshTokenRepository interface {
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Create(ctx context.Context, token *models.RefreshToken) error
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&refreshToken).Error
	if err != nil {
		return nil, err
	}
	return &refreshToken, nil
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *refreshTokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < NOW()").
		Delete(&models.RefreshToken{}).Error
}
