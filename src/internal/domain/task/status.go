package task

// Status 任務狀態
//
//	open ──SubmitForQC──▶ in_qc ──Complete──▶ completed
//	  ▲                     │
//	  └──────Reopen─────────┘
type Status string

const (
	StatusOpen      Status = "open"
	StatusInQC      Status = "in_qc"
	StatusCompleted Status = "completed"
)

// ParseStatus 解析持久化的狀態字串
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusInQC, StatusCompleted:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus.WithContext("input", s)
	}
}

// String 實現 fmt.Stringer
func (s Status) String() string {
	return string(s)
}
