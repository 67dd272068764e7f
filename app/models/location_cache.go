package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationCache is the persistent cache document stored in MongoDB. One entry
// per lookup fingerprint.
type LocationCache struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	KeyFingerprint string             `bson:"key_fingerprint" json:"key_fingerprint"`
	RawKey         string             `bson:"raw_key" json:"raw_key"`
	Result         LocationResult     `bson:"result" json:"result"`
	PostalCode     string             `bson:"postal_code" json:"postal_code"`
	Confidence     float64            `bson:"confidence" json:"confidence"`
	MatchType      string             `bson:"match_type" json:"match_type"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	LastAccessed   time.Time          `bson:"last_accessed" json:"last_accessed"`
	AccessCount    int64              `bson:"access_count" json:"access_count"`
}
