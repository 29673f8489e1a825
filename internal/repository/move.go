package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/moviemates/gamecore-backend/internal/entity"
)

// MoveRecord is the archived form of one move: the in-game move plus the
// identifiers the in-memory payload does not carry.
type MoveRecord struct {
	RoomID   string      `json:"room_id"`
	PlayerID string      `json:"player_id"`
	Move     entity.Move `json:"move"`
}

type MoveRepository interface {
	AppendMove(ctx context.Context, record *MoveRecord) error
	GetByRoomID(ctx context.Context, roomID string) ([]*MoveRecord, error)
}

type dbMove struct {
	client *redis.Client
}

func NewMoveRepository(client *redis.Client) MoveRepository {
	return &dbMove{
		client: client,
	}
}

func (that *dbMove) AppendMove(ctx context.Context, record *MoveRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal move record: %w", err)
	}

	moveKey := "moves:" + record.RoomID
	if err = that.client.RPush(ctx, moveKey, recordJSON).Err(); err != nil {
		return fmt.Errorf("failed to append move: %w", err)
	}

	return nil
}

func (that *dbMove) GetByRoomID(ctx context.Context, roomID string) ([]*MoveRecord, error) {
	moveKey := "moves:" + roomID

	response, err := that.client.LRange(ctx, moveKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get moves by room ID: %w", err)
	}

	records := make([]*MoveRecord, 0, len(response))
	for _, raw := range response {
		var record MoveRecord
		if err = json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal move record: %w", err)
		}

		records = append(records, &record)
	}

	return records, nil
}
