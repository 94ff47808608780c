package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"venuedesk/internal/config"
	"venuedesk/internal/domain"
)

const (
	backupPrefix     = "events_backup_"
	backupSuffix     = ".db"
	backupDateLayout = "20060102"
)

// BackupService copies the store file into a rolling set of dated snapshots,
// one per calendar day, pruned to the configured retention count.
type BackupService struct {
	dbPath    string
	dir       string
	retention int
}

func NewBackupService(dbPath string, conf config.BackupConfig) *BackupService {
	retention := conf.Retention
	if retention < 1 {
		retention = 7
	}

	return &BackupService{
		dbPath:    dbPath,
		dir:       conf.Dir,
		retention: retention,
	}
}

// RunDaily takes today's snapshot unless one already exists, then prunes the
// oldest snapshots beyond the retention count. Safe to call any number of
// times per day.
func (s *BackupService) RunDaily() error {
	return s.runDailyFor(time.Now())
}

func (s *BackupService) runDailyFor(now time.Time) error {
	name := backupPrefix + now.Format(backupDateLayout) + backupSuffix
	dst := filepath.Join(s.dir, name)

	if _, err := os.Stat(dst); err == nil {
		return nil
	}

	if err := s.copyStore(dst); err != nil {
		return err
	}

	s.prune()

	return nil
}

// ManualBackup copies the store to an explicit destination, outside the
// rolling daily set. The retention rules do not apply.
func (s *BackupService) ManualBackup(dst string) error {
	return s.copyStore(dst)
}

func (s *BackupService) copyStore(dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll -> %w", err)
	}

	src, err := os.Open(s.dbPath)
	if err != nil {
		return fmt.Errorf("os.Open -> %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("os.Create -> %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("io.Copy -> %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("out.Close -> %w", err)
	}

	zap.L().Info("store backed up", zap.String("dst", dst))

	return nil
}

// prune removes the oldest snapshots beyond the retention count. The dated
// filenames sort chronologically. Failures are logged and swallowed; a failed
// prune must never block a successful backup.
func (s *BackupService) prune() {
	names := s.snapshotNames()
	if len(names) <= s.retention {
		return
	}

	for _, name := range names[:len(names)-s.retention] {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			zap.L().Warn("failed to prune backup", zap.String("name", name), zap.Error(err))
		}
	}
}

func (s *BackupService) snapshotNames() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("failed to list backup dir", zap.String("dir", s.dir), zap.Error(err))
		}
		return nil
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}

		// Only the dated daily snapshots participate in retention; manual
		// copies carry a longer timestamp and are left alone.
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupSuffix)
		if _, err := time.Parse(backupDateLayout, stamp); err != nil {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// LastBackupDescription renders the age of the newest snapshot for the status
// bar, e.g. "Today" or "3 days ago".
func (s *BackupService) LastBackupDescription() string {
	return s.lastBackupDescriptionAt(time.Now())
}

func (s *BackupService) lastBackupDescriptionAt(now time.Time) string {
	names := s.snapshotNames()
	if len(names) == 0 {
		return "No backups yet"
	}

	latest := names[len(names)-1]
	stamp := strings.TrimSuffix(strings.TrimPrefix(latest, backupPrefix), backupSuffix)

	taken, err := time.Parse(backupDateLayout, stamp)
	if err != nil {
		return "Backup status unknown"
	}

	today, _ := time.Parse(domain.DateLayout, now.Format(domain.DateLayout))
	days := int(today.Sub(taken).Hours() / 24)

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
