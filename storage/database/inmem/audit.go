package inmemdb

import (
	"github.com/trezcool/masomo-dashboard/core/audit"
)

type auditRepository struct {
	db *auditTable
}

var _ audit.Repository = (*auditRepository)(nil)

func NewAuditRepository(db *DB) audit.Repository {
	return &auditRepository{db: db.audit}
}

func (repo *auditRepository) CreateLog(l audit.Log) (audit.Log, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.logs = append(repo.db.logs, l)
	return l, nil
}

func (repo *auditRepository) RecentLogs(limit int) ([]audit.Log, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	n := len(repo.db.logs)
	if limit > n {
		limit = n
	}
	logs := make([]audit.Log, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		logs = append(logs, repo.db.logs[i])
	}
	return logs, nil
}
