package statistic

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"chatstats/internal/models"
	"chatstats/internal/providers"
	"chatstats/internal/statistic/interfaces"
	"chatstats/internal/structures"
)

// Artifact file names inside the output directory. With compression
// enabled each carries an additional ".zst" suffix.
const (
	ProfilesFile   = "users.json"
	StatsFile      = "user_stats.json"
	SocialFile     = "user_social.json"
	RankingsFile   = "rankings.json"
	CheckpointFile = "checkpoint.json"
)

// ArchiveManager persists and loads the four finalized artifacts plus
// the mid-stream checkpoint. Every write goes through a tmp file,
// fsync and rename so readers never observe torn documents.
type ArchiveManager struct {
	compressor interfaces.CompressorInterface
	compress   bool
	logger     providers.Logger
}

func NewArchiveManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *ArchiveManager {
	return &ArchiveManager{
		compressor: compressor,
		compress:   conf.Output.Compress,
		logger:     logger,
	}
}

func (m *ArchiveManager) SaveArchive(dir string, archive *models.Archive) error {
	if err := m.writeDoc(dir, ProfilesFile, archive.Profiles); err != nil {
		return fmt.Errorf("persist profiles: %w", err)
	}
	if err := m.writeDoc(dir, StatsFile, archive.Stats); err != nil {
		return fmt.Errorf("persist stats: %w", err)
	}
	if err := m.writeDoc(dir, SocialFile, archive.Social); err != nil {
		return fmt.Errorf("persist social: %w", err)
	}
	if err := m.writeDoc(dir, RankingsFile, archive.Rankings); err != nil {
		return fmt.Errorf("persist rankings: %w", err)
	}
	return nil
}

func (m *ArchiveManager) LoadArchive(dir string) (*models.Archive, error) {
	archive := &models.Archive{
		Profiles: make(map[string]*models.Profile),
		Stats:    make(map[string]*models.FinalStats),
		Social:   make(map[string]*models.Social),
		Rankings: &models.Rankings{},
	}
	if err := m.readDoc(dir, ProfilesFile, &archive.Profiles); err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	if err := m.readDoc(dir, StatsFile, &archive.Stats); err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	if err := m.readDoc(dir, SocialFile, &archive.Social); err != nil {
		return nil, fmt.Errorf("load social: %w", err)
	}
	if err := m.readDoc(dir, RankingsFile, archive.Rankings); err != nil {
		return nil, fmt.Errorf("load rankings: %w", err)
	}
	return archive, nil
}

// SaveCheckpoint writes the in-progress snapshot next to the artifacts.
// The file is removed by the caller once the final archive is in place.
func (m *ArchiveManager) SaveCheckpoint(dir string, cp *models.Checkpoint) error {
	if err := m.writeDoc(dir, CheckpointFile, cp); err != nil {
		return fmt.Errorf("persist checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint returns the last checkpoint, or nil when none exists.
func (m *ArchiveManager) LoadCheckpoint(dir string) (*models.Checkpoint, error) {
	if !m.docExists(dir, CheckpointFile) {
		return nil, nil
	}
	var cp models.Checkpoint
	if err := m.readDoc(dir, CheckpointFile, &cp); err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	if cp.Version != models.CheckpointVersion {
		return nil, fmt.Errorf("unsupported checkpoint version %d", cp.Version)
	}
	return &cp, nil
}

// RemoveCheckpoint deletes the checkpoint after a successful commit.
func (m *ArchiveManager) RemoveCheckpoint(dir string) {
	for _, path := range []string{m.docPath(dir, CheckpointFile), filepath.Join(dir, CheckpointFile), filepath.Join(dir, CheckpointFile+".zst")} {
		_ = os.Remove(path)
	}
}

func (m *ArchiveManager) docPath(dir, name string) string {
	if m.compress {
		return filepath.Join(dir, name+".zst")
	}
	return filepath.Join(dir, name)
}

func (m *ArchiveManager) docExists(dir, name string) bool {
	if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
		return true
	}
	_, err := os.Stat(filepath.Join(dir, name+".zst"))
	return err == nil
}

func (m *ArchiveManager) writeDoc(dir, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	stale := filepath.Join(dir, name+".zst")
	if m.compress {
		data, err = m.compressor.Compress(data)
		if err != nil {
			return err
		}
		stale = filepath.Join(dir, name)
	}

	if err = os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := m.docPath(dir, name)
	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, path); err != nil {
		return err
	}

	// A leftover from the other compression setting would shadow or
	// stale-read on load.
	_ = os.Remove(stale)
	return nil
}

func (m *ArchiveManager) readDoc(dir, name string, out interface{}) error {
	plain := filepath.Join(dir, name)
	if data, err := os.ReadFile(plain); err == nil {
		return json.Unmarshal(data, out)
	} else if !os.IsNotExist(err) {
		return err
	}

	data, err := os.ReadFile(plain + ".zst")
	if err != nil {
		return err
	}
	decompressed, err := m.compressor.Decompress(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(decompressed, out)
}

func (m *ArchiveManager) Close() {
	m.compressor.Close()
}
