package stage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	leadModel "github.com/jackiechen20262026/marketing/models/lead"
	userModel "github.com/jackiechen20262026/marketing/models/user"
	"github.com/jackiechen20262026/marketing/services"
)

// Engine applies lead stage transitions against the fixed stage graph and
// keeps the append-only history in agreement with the current stage.
type Engine struct {
	DB *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{DB: db}
}

// MoveStage validates and applies a stage transition for the given lead.
// A lead outside the actor's scope is reported as not found. Terminal
// stages admit no outgoing move for any operator; otherwise the target
// must be the canonical next stage or a universal override target, unless
// the actor holds an unrestricted role, which may force any transition as
// a correction escape hatch. The stage update and the history append are
// committed in one transaction.
func (e *Engine) MoveStage(actor userModel.User, leadID string, toStage leadModel.Stage, note string) (*leadModel.StageHistory, error) {
	if !toStage.IsValid() {
		return nil, apperrors.Validationf("unknown stage %q", toStage)
	}

	var entry leadModel.StageHistory
	err := e.DB.Transaction(func(tx *gorm.DB) error {
		var l leadModel.Lead
		if err := tx.Scopes(services.LeadScope(actor)).First(&l, "leads.id = ?", leadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if l.Stage.IsTerminal() {
			return fmt.Errorf("%w: %s is terminal", apperrors.ErrInvalidTransition, l.Stage)
		}
		if !l.Stage.CanTransition(toStage) && !actor.Role.Unrestricted() {
			return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, l.Stage, toStage)
		}

		entry = leadModel.StageHistory{
			LeadID:     l.ID,
			FromStage:  l.Stage,
			ToStage:    toStage,
			OperatorID: actor.ID,
		}
		if note != "" {
			entry.Note = &note
		}

		updates := map[string]interface{}{
			"stage":      toStage,
			"updated_at": time.Now(),
		}
		if err := tx.Model(&leadModel.Lead{}).Where("id = ?", l.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// AdvanceForBrochure moves a lead to brochure-sent as part of campaign
// batch creation. Batch creation is itself a recognized transition source,
// so the adjacency check is bypassed, but the history entry is still
// written with the batch id for traceability. Must run inside the caller's
// transaction alongside the brochure counter update.
func AdvanceForBrochure(tx *gorm.DB, l *leadModel.Lead, operatorID, batchID string) error {
	note := fmt.Sprintf("campaign batch %s", batchID)
	entry := leadModel.StageHistory{
		LeadID:     l.ID,
		FromStage:  l.Stage,
		ToStage:    leadModel.StageBrochureSent,
		OperatorID: operatorID,
		Note:       &note,
	}
	return tx.Create(&entry).Error
}
