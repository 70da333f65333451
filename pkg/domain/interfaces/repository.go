package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Regulation() RegulationRepository
	AuditLog() AuditLogRepository

	Close() error
}
