package mapping

import (
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/openledgerhq/gl_backend/internal/models"
)

// ToModelEntry converts a domain JournalEntry to a model JournalEntry.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		EntryNumber:      d.EntryNumber,
		EntryDate:        d.EntryDate,
		Description:      d.Description,
		Status:           models.EntryStatus(d.Status),
		PostedAt:         d.PostedAt,
		PostedBy:         d.PostedBy,
		ReversedEntryID:  d.ReversedEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		EntryNumber:      m.EntryNumber,
		EntryDate:        m.EntryDate,
		Description:      m.Description,
		Status:           domain.EntryStatus(m.Status),
		PostedAt:         m.PostedAt,
		PostedBy:         m.PostedBy,
		ReversedEntryID:  m.ReversedEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLine converts a domain JournalLine to a model JournalLine.
func ToModelLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:    d.LineID,
		EntryID:   d.EntryID,
		AccountID: d.AccountID,
		Debit:     d.Debit,
		Credit:    d.Credit,
		Memo:      d.Memo,
		LineOrder: d.LineOrder,
	}
}

// ToDomainLine converts a model JournalLine to a domain JournalLine.
func ToDomainLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:    m.LineID,
		EntryID:   m.EntryID,
		AccountID: m.AccountID,
		Debit:     m.Debit,
		Credit:    m.Credit,
		Memo:      m.Memo,
		LineOrder: m.LineOrder,
	}
}

// ToDomainLineSlice converts a slice of model JournalLines to domain JournalLines.
func ToDomainLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLine(m)
	}
	return ds
}
