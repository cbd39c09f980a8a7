package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
	_ "modernc.org/sqlite" // SQLite driver for the complaints table
)

// createdAtLayout matches the format already present in complaints.db
const createdAtLayout = "2006-01-02 15:04:05"

const complaintsSchema = `CREATE TABLE IF NOT EXISTS complaints (
	complaint_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	phone_number TEXT NOT NULL,
	email TEXT NOT NULL,
	complaint_details TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// maxIDAttempts bounds regeneration when a generated ID collides
const maxIDAttempts = 5

type ComplaintStore struct {
	db *sql.DB
}

func NewComplaintStore(dbPath string) (domain.ComplaintStore, error) {
	log.Printf("Opening complaints store at %s", dbPath)

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout=5000&_pragma=foreign_keys=on", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open complaints db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping complaints db: %w", err)
	}

	if _, err := db.Exec(complaintsSchema); err != nil {
		return nil, fmt.Errorf("failed to create complaints table: %w", err)
	}

	return &ComplaintStore{db: db}, nil
}

// GenerateComplaintID produces a 6-character code: 3 random uppercase
// letters followed by 3 random digits, e.g. ABC123.
func GenerateComplaintID() (string, error) {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const digits = "0123456789"

	code := make([]byte, 6)
	for i := 0; i < 3; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		code[i] = letters[num.Int64()]
	}
	for i := 3; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}

	return string(code), nil
}

// Create inserts a new complaint with a fresh ID and server-side timestamp.
// An ID collision triggers regeneration instead of failing the request.
func (s *ComplaintStore) Create(ctx context.Context, req *domain.ComplaintRequest) (string, error) {
	createdAt := time.Now().Format(createdAtLayout)

	var lastErr error
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id, err := GenerateComplaintID()
		if err != nil {
			return "", &domain.StorageError{Op: "generate complaint id", Err: err}
		}

		_, err = s.db.ExecContext(ctx,
			"INSERT INTO complaints (complaint_id, name, phone_number, email, complaint_details, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			id, req.Name, req.PhoneNumber, req.Email, req.ComplaintDetails, createdAt)
		if err == nil {
			return id, nil
		}

		if isDuplicateID(err) {
			log.Printf("[store] complaint ID %s already taken, regenerating (attempt %d/%d)", id, attempt, maxIDAttempts)
			lastErr = domain.ErrDuplicateID
			continue
		}

		return "", &domain.StorageError{Op: "insert complaint", Err: err}
	}

	return "", &domain.StorageError{Op: "insert complaint", Err: lastErr}
}

// Get returns the complaint for the given ID. The candidate is upper-cased
// before lookup so abc123 and ABC123 resolve to the same record.
func (s *ComplaintStore) Get(ctx context.Context, id string) (*domain.Complaint, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT complaint_id, name, phone_number, email, complaint_details, created_at FROM complaints WHERE complaint_id = ?",
		strings.ToUpper(strings.TrimSpace(id)))

	rec, err := scanComplaint(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get complaint", Err: err}
	}

	return rec, nil
}

// GetAll returns every complaint. Order is not guaranteed.
func (s *ComplaintStore) GetAll(ctx context.Context) ([]domain.Complaint, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT complaint_id, name, phone_number, email, complaint_details, created_at FROM complaints")
	if err != nil {
		return nil, &domain.StorageError{Op: "list complaints", Err: err}
	}
	defer rows.Close()

	complaints := []domain.Complaint{}
	for rows.Next() {
		rec, err := scanComplaint(rows.Scan)
		if err != nil {
			return nil, &domain.StorageError{Op: "list complaints", Err: err}
		}
		complaints = append(complaints, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list complaints", Err: err}
	}

	return complaints, nil
}

func (s *ComplaintStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func scanComplaint(scan func(dest ...interface{}) error) (*domain.Complaint, error) {
	var rec domain.Complaint
	var createdAt string

	if err := scan(&rec.ComplaintID, &rec.Name, &rec.PhoneNumber, &rec.Email, &rec.ComplaintDetails, &createdAt); err != nil {
		return nil, err
	}

	// Rows written by the previous backend use the same layout
	ts, err := time.ParseInLocation(createdAtLayout, createdAt, time.Local)
	if err != nil {
		log.Printf("[store] unparseable created_at %q: %v", createdAt, err)
	}
	rec.CreatedAt = ts

	return &rec, nil
}

// isDuplicateID reports whether err is a primary key violation on
// complaints.complaint_id as surfaced by the sqlite driver.
func isDuplicateID(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: complaints.complaint_id")
}
