package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = goerr.New("record not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	regulation *regulationRepository
	auditLog   *auditLogRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		regulation: newRegulationRepository(),
		auditLog:   newAuditLogRepository(),
	}
}

func (m *Memory) Regulation() interfaces.RegulationRepository {
	return m.regulation
}

func (m *Memory) AuditLog() interfaces.AuditLogRepository {
	return m.auditLog
}

func (m *Memory) Close() error {
	return nil
}
