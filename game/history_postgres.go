package game

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	// registers the postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

const handHistorySchema = `
CREATE TABLE IF NOT EXISTS hand_history (
	session_id TEXT NOT NULL,
	hand_num   INTEGER NOT NULL,
	data       TEXT NOT NULL,
	PRIMARY KEY (session_id, hand_num)
)`

// PostgresHandTracker keeps hand history in postgres so it outlives the
// process, unlike the memory backend.
type PostgresHandTracker struct {
	db *sqlx.DB
}

func NewPostgresHandTracker(host string, port int, user string, pw string, dbName string) (*PostgresHandTracker, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, pw, dbName)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to postgres")
	}
	if _, err := db.Exec(handHistorySchema); err != nil {
		return nil, errors.Wrap(err, "unable to create hand_history table")
	}
	return &PostgresHandTracker{db: db}, nil
}

func (p *PostgresHandTracker) Save(record *HandRecord) error {
	data, err := jsoniter.Marshal(record)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(
		`INSERT INTO hand_history (session_id, hand_num, data) VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, hand_num) DO UPDATE SET data = $3`,
		record.SessionID, record.HandNum, string(data))
	return errors.Wrap(err, "unable to save hand record")
}

func (p *PostgresHandTracker) Load(sessionID string, handNum uint32) (*HandRecord, error) {
	var data string
	err := p.db.Get(&data,
		`SELECT data FROM hand_history WHERE session_id = $1 AND hand_num = $2`,
		sessionID, handNum)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("Hand record for Session: %s, Hand: %d is not found", sessionID, handNum)
	} else if err != nil {
		return nil, err
	}
	record := &HandRecord{}
	if err := jsoniter.Unmarshal([]byte(data), record); err != nil {
		return nil, err
	}
	return record, nil
}

func (p *PostgresHandTracker) Remove(sessionID string, handNum uint32) error {
	_, err := p.db.Exec(
		`DELETE FROM hand_history WHERE session_id = $1 AND hand_num = $2`,
		sessionID, handNum)
	return err
}
