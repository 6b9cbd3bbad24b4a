package implementation

import (
	"context"
	"errors"

	"email-responder-be/internal/entity"
	"email-responder-be/internal/mapper"
	"email-responder-be/internal/model"
	"email-responder-be/internal/repository/contract"
	"email-responder-be/internal/repository/scope"
	"email-responder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeSnippetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeSnippetMapper
}

func NewKnowledgeSnippetRepository(db *gorm.DB) contract.KnowledgeSnippetRepository {
	return &KnowledgeSnippetRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeSnippetMapper(),
	}
}

func (r *KnowledgeSnippetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeSnippetRepositoryImpl) Create(ctx context.Context, snippet *entity.KnowledgeSnippet) error {
	m := r.mapper.ToModel(snippet)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*snippet = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeSnippetRepositoryImpl) Update(ctx context.Context, snippet *entity.KnowledgeSnippet) error {
	m := r.mapper.ToModel(snippet)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*snippet = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeSnippetRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KnowledgeSnippet{}, id).Error
}

func (r *KnowledgeSnippetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeSnippet, error) {
	var m model.KnowledgeSnippet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KnowledgeSnippetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeSnippet, error) {
	var models []*model.KnowledgeSnippet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgeSnippetRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KnowledgeSnippet{}).Count(&count).Error
	return count, err
}

func (r *KnowledgeSnippetRepositoryImpl) DistinctIntents(ctx context.Context) ([]string, error) {
	var intents []string
	err := r.db.WithContext(ctx).
		Model(&model.KnowledgeSnippet{}).
		Distinct("intent").
		Scopes(scope.ExcludeSoftDelete).
		Pluck("intent", &intents).Error
	if err != nil {
		return nil, err
	}
	return intents, nil
}
