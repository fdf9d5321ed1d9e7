package replay

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"git.lost.host/meutraa/hoshi/internal/game"
	"git.lost.host/meutraa/hoshi/internal/position"
	"git.lost.host/meutraa/hoshi/internal/score"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("journal not found")

// Journal is everything needed to play a round again. The score is not kept,
// it is whatever a replay of the inputs produces.
type Journal struct {
	ID         uuid.UUID
	Created    time.Time
	Seed       int64
	Difficulty string
	Duration   time.Duration // Resolved track duration
	Elapsed    time.Duration // When the round ended, short of Duration if aborted
	Rules      score.Rules
	Layout     Layout
	Inputs     []game.Input
}

// Layout is the screen geometry a round was judged on. Positions, and with
// them every judgment, depend on it.
type Layout struct {
	ViewportHeight float64
	Position       position.Config
}

type Store struct {
	db  *sql.DB
	log logrus.FieldLogger
}

const initStatement = `
create table if not exists rounds
  (
	  id text not null primary key,
	  created integer not null,
	  seed integer not null,
	  difficulty text not null,
	  duration integer not null,
	  elapsed integer not null,
	  rules blob,
	  inputs blob,
	  layout blob
  );
`

func Open(path string, log logrus.FieldLogger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to open journal %v", path)
	}
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, errors.Wrap(err, "unable to create journal table")
	}
	// Journals written before the layout was kept lack the column
	if _, err := db.Exec("alter table rounds add column layout blob"); nil != err && !strings.Contains(err.Error(), "duplicate column") {
		db.Close()
		return nil, errors.Wrap(err, "unable to migrate journal table")
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(j *Journal) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Created.IsZero() {
		j.Created = time.Now()
	}
	rules, err := json.Marshal(j.Rules)
	if nil != err {
		return errors.Wrap(err, "unable to marshal rules")
	}
	inputs, err := json.Marshal(compactInputs(j.Inputs))
	if nil != err {
		return errors.Wrap(err, "unable to marshal inputs")
	}
	layout, err := json.Marshal(j.Layout)
	if nil != err {
		return errors.Wrap(err, "unable to marshal layout")
	}
	_, err = s.db.Exec(
		"insert into rounds(id, created, seed, difficulty, duration, elapsed, rules, inputs, layout) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		j.ID.String(), j.Created.UnixNano(), j.Seed, j.Difficulty, int64(j.Duration), int64(j.Elapsed), rules, inputs, layout,
	)
	if nil != err {
		return errors.Wrap(err, "unable to save journal")
	}
	s.log.WithFields(logrus.Fields{"id": j.ID, "inputs": len(j.Inputs)}).Info("journal saved")
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJournal(row scanner) (*Journal, error) {
	var (
		id                string
		created, duration int64
		elapsed           int64
		rules, inputs     []byte
		layout            []byte
		j                 Journal
	)
	if err := row.Scan(&id, &created, &j.Seed, &j.Difficulty, &duration, &elapsed, &rules, &inputs, &layout); nil != err {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if nil != err {
		return nil, errors.Wrapf(err, "bad journal id %q", id)
	}
	if err := json.Unmarshal(rules, &j.Rules); nil != err {
		return nil, errors.Wrap(err, "unable to unmarshal rules")
	}
	if len(layout) > 0 {
		if err := json.Unmarshal(layout, &j.Layout); nil != err {
			return nil, errors.Wrap(err, "unable to unmarshal layout")
		}
	}
	var ins []InputsCompact
	if err := json.Unmarshal(inputs, &ins); nil != err {
		return nil, errors.Wrap(err, "unable to unmarshal inputs")
	}
	j.ID = parsed
	j.Created = time.Unix(0, created)
	j.Duration = time.Duration(duration)
	j.Elapsed = time.Duration(elapsed)
	j.Inputs = uncompactInputs(ins)
	return &j, nil
}

const selectColumns = "select id, created, seed, difficulty, duration, elapsed, rules, inputs, layout from rounds"

func (s *Store) Load(id uuid.UUID) (*Journal, error) {
	row := s.db.QueryRow(selectColumns+" where id = ?", id.String())
	j, err := scanJournal(row)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "id %v", id)
	}
	if nil != err {
		return nil, errors.Wrapf(err, "unable to load journal %v", id)
	}
	return j, nil
}

// Latest returns the most recently saved journal
func (s *Store) Latest() (*Journal, error) {
	row := s.db.QueryRow(selectColumns + " order by created desc limit 1")
	j, err := scanJournal(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if nil != err {
		return nil, errors.Wrap(err, "unable to load latest journal")
	}
	return j, nil
}

// List returns every journal, newest first. Rows that fail to decode are
// logged and skipped.
func (s *Store) List() ([]*Journal, error) {
	rows, err := s.db.Query(selectColumns + " order by created desc")
	if nil != err {
		return nil, errors.Wrap(err, "unable to list journals")
	}
	defer rows.Close()

	journals := []*Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if nil != err {
			s.log.WithError(err).Warn("skipping unreadable journal")
			continue
		}
		journals = append(journals, j)
	}
	return journals, errors.Wrap(rows.Err(), "unable to read journals")
}
