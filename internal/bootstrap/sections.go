package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/logger"
)

// sectionNames are the five fixed test blocks in serving order. The order
// index is the gating key and must never change once students hold attempts.
var sectionNames = [domain.SectionCount]string{
	"Self Awareness",
	"Career Knowledge",
	"Decision Making",
	"Planning Skills",
	"Work Readiness",
}

// SeedSections creates any missing section rows. Idempotent: rows are keyed
// by order index and existing ones are left untouched.
func SeedSections(ctx context.Context, sectionRepo domain.SectionRepository, txManager domain.TransactionManager) error {
	return txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		created := 0
		for i, name := range sectionNames {
			orderIndex := i + 1
			existing, err := sectionRepo.GetByOrderIndex(txCtx, orderIndex)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			err = sectionRepo.CreateSection(txCtx, &domain.Section{
				OrderIndex:           orderIndex,
				Name:                 name,
				IsActive:             true,
				MinQuestionsRequired: domain.QuestionsPerSection,
			})
			if err != nil {
				return err
			}
			created++
		}
		if created > 0 {
			logger.Get().Info("Seeded sections", zap.Int("created", created))
		}
		return nil
	})
}
