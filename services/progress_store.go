// services/progress_store.go - user progress persistence
package services

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"sanskriti/database"
	"sanskriti/models"
	"sanskriti/quiz"
)

// ProgressStore loads and saves per-user progress records. Load always
// returns a usable record: when the backing store is unreachable it falls
// back to defaults and reports the error alongside, so callers can continue
// in a degraded, non-persistent mode. Save failures are surfaced to the
// caller and are never fatal to a running session.
type ProgressStore interface {
	Load(userID uint) (*quiz.Progress, error)
	Save(userID uint, update quiz.Update) error
}

var progressStore ProgressStore

// InitProgressStore wires the database-backed store singleton.
func InitProgressStore() {
	progressStore = NewDBProgressStore(database.GetDB())
}

// GetProgressStore returns the initialized store.
func GetProgressStore() ProgressStore {
	if progressStore == nil {
		log.Fatal("Progress store not initialized. Call InitProgressStore() first.")
	}
	return progressStore
}

// DBProgressStore persists progress rows through GORM, with the levels map
// and achievement set held as JSON columns.
type DBProgressStore struct {
	db *gorm.DB
}

func NewDBProgressStore(db *gorm.DB) *DBProgressStore {
	return &DBProgressStore{db: db}
}

// Load fetches the user's record, creating the default one on first access.
// Whatever was stored, the returned record is normalized: level 1 unlocked,
// levels 2-5 backfilled. Healed records are written back best-effort.
func (s *DBProgressStore) Load(userID uint) (*quiz.Progress, error) {
	var row models.UserProgress
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress := quiz.NewProgress(userID)
		row, encErr := encodeProgress(progress)
		if encErr != nil {
			return progress, encErr
		}
		if createErr := s.db.Create(&row).Error; createErr != nil {
			log.Printf("Failed to create progress record for user %d: %v", userID, createErr)
			return progress, createErr
		}
		return progress, nil
	}
	if err != nil {
		// Degraded mode: hand back defaults so the quiz stays playable.
		log.Printf("Failed to load progress for user %d, using defaults: %v", userID, err)
		return quiz.NewProgress(userID), err
	}

	progress, decErr := decodeProgress(&row)
	if decErr != nil {
		log.Printf("Corrupted progress record for user %d, using defaults: %v", userID, decErr)
		return quiz.NewProgress(userID), decErr
	}

	if progress.Normalize() {
		// Persist the repair so legacy records converge.
		if healErr := s.writeBack(userID, progress); healErr != nil {
			log.Printf("Failed to persist healed progress for user %d: %v", userID, healErr)
		}
	}
	return progress, nil
}

// Save applies a field-level merge to the stored record inside a
// transaction. Concurrent saves resolve last-write-wins, which the engine
// tolerates: the completion merge supersedes partial-credit writes.
func (s *DBProgressStore) Save(userID uint, update quiz.Update) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var row models.UserProgress
		err := tx.Where("user_id = ?", userID).First(&row).Error

		var progress *quiz.Progress
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			progress = quiz.NewProgress(userID)
		case err != nil:
			return err
		default:
			progress, err = decodeProgress(&row)
			if err != nil {
				progress = quiz.NewProgress(userID)
			}
		}

		progress.Apply(update)

		encoded, err := encodeProgress(progress)
		if err != nil {
			return err
		}

		if row.ID == 0 {
			return tx.Create(&encoded).Error
		}
		return tx.Model(&models.UserProgress{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
			"total_score":  encoded.TotalScore,
			"levels":       encoded.Levels,
			"achievements": encoded.Achievements,
			"last_played":  encoded.LastPlayed,
			"updated_at":   time.Now(),
		}).Error
	})
}

func (s *DBProgressStore) writeBack(userID uint, progress *quiz.Progress) error {
	encoded, err := encodeProgress(progress)
	if err != nil {
		return err
	}
	return s.db.Model(&models.UserProgress{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"total_score":  encoded.TotalScore,
		"levels":       encoded.Levels,
		"achievements": encoded.Achievements,
	}).Error
}

func encodeProgress(p *quiz.Progress) (models.UserProgress, error) {
	levels, err := json.Marshal(p.Levels)
	if err != nil {
		return models.UserProgress{}, err
	}
	achievements, err := json.Marshal(p.Achievements)
	if err != nil {
		return models.UserProgress{}, err
	}
	return models.UserProgress{
		UserID:       p.UserID,
		TotalScore:   p.TotalScore,
		Levels:       string(levels),
		Achievements: string(achievements),
		LastPlayed:   p.LastPlayed,
	}, nil
}

func decodeProgress(row *models.UserProgress) (*quiz.Progress, error) {
	p := &quiz.Progress{
		UserID:     row.UserID,
		TotalScore: row.TotalScore,
		LastPlayed: row.LastPlayed,
	}
	if row.Levels != "" {
		if err := json.Unmarshal([]byte(row.Levels), &p.Levels); err != nil {
			return nil, err
		}
	}
	if row.Achievements != "" {
		if err := json.Unmarshal([]byte(row.Achievements), &p.Achievements); err != nil {
			return nil, err
		}
	}
	p.Normalize()
	return p, nil
}

// MemoryProgressStore is an in-memory ProgressStore used in tests and as a
// stand-in when no database is reachable.
type MemoryProgressStore struct {
	mu      sync.RWMutex
	records map[uint]*quiz.Progress
}

func NewMemoryProgressStore() *MemoryProgressStore {
	return &MemoryProgressStore{records: make(map[uint]*quiz.Progress)}
}

// Seed replaces the stored record for a user, normalization deferred to Load.
func (s *MemoryProgressStore) Seed(p *quiz.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[p.UserID] = p
}

func (s *MemoryProgressStore) Load(userID uint) (*quiz.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.records[userID]
	if !ok {
		p = quiz.NewProgress(userID)
		s.records[userID] = p
	}
	p.Normalize()
	return cloneProgress(p), nil
}

func (s *MemoryProgressStore) Save(userID uint, update quiz.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.records[userID]
	if !ok {
		p = quiz.NewProgress(userID)
		s.records[userID] = p
	}
	p.Apply(update)
	return nil
}

func cloneProgress(p *quiz.Progress) *quiz.Progress {
	out := &quiz.Progress{
		UserID:       p.UserID,
		TotalScore:   p.TotalScore,
		Levels:       make(map[int]*quiz.LevelProgress, len(p.Levels)),
		Achievements: append([]string{}, p.Achievements...),
		LastPlayed:   p.LastPlayed,
	}
	for lvl, lp := range p.Levels {
		cp := *lp
		cp.CompletedQuestions = append([]uint{}, lp.CompletedQuestions...)
		out.Levels[lvl] = &cp
	}
	return out
}
