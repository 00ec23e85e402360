package domain

type SectionStatus string

const (
	SectionOK     SectionStatus = "ok"
	SectionAbsent SectionStatus = "absent"
)

// Section distingue "sem dados" de "papel não encontrado" em cada parte do relatório
type Section[T any] struct {
	Status SectionStatus `json:"status"`
	Data   *T            `json:"data,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

func Present[T any](data T) Section[T] {
	return Section[T]{Status: SectionOK, Data: &data}
}

func Absent[T any](reason string) Section[T] {
	return Section[T]{Status: SectionAbsent, Reason: reason}
}

func (s Section[T]) OK() bool {
	return s.Status == SectionOK && s.Data != nil
}

func (s Section[T]) Get() (T, bool) {
	if !s.OK() {
		var zero T
		return zero, false
	}
	return *s.Data, true
}
