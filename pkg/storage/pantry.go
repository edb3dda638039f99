package storage

import (
	"fmt"
	"time"

	"github.com/korjavin/fridgechef/pkg/models"
)

// PantryStore keeps one pantry per chat
type PantryStore struct {
	store *Store
}

// NewPantryStore creates a pantry store on top of s
func NewPantryStore(s *Store) *PantryStore {
	return &PantryStore{store: s}
}

func pantryKey(channelID int64) string {
	return fmt.Sprintf("pantry:%d", channelID)
}

// Load returns the pantry for a chat, or an empty one if none was saved yet
func (p *PantryStore) Load(channelID int64) (*models.Pantry, error) {
	var pantry models.Pantry
	err := p.store.Get(pantryKey(channelID), &pantry)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		pantry = models.Pantry{
			ID:          pantryKey(channelID),
			ChannelID:   channelID,
			Items:       []models.PantryItem{},
			LastUpdated: time.Now(),
		}
	}
	return &pantry, nil
}

// Save writes the pantry back
func (p *PantryStore) Save(pantry *models.Pantry) error {
	pantry.ID = pantryKey(pantry.ChannelID)
	pantry.LastUpdated = time.Now()
	return p.store.Set(pantry.ID, pantry)
}

// Reset empties the pantry for a chat
func (p *PantryStore) Reset(channelID int64) error {
	return p.Save(&models.Pantry{ChannelID: channelID, Items: []models.PantryItem{}})
}
