package mapping

import (
	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	"github.com/fdcsoft/fdc_core_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:    d.TransactionID,
		ClientID:         d.ClientID,
		JobID:            d.JobID,
		ModuleInstanceID: d.ModuleInstanceID,
		Date:             d.Date,
		Amount:           d.Amount,
		PayeeRaw:         d.PayeeRaw,
		DescriptionRaw:   d.DescriptionRaw,
		Source:           string(d.Source),
		CategoryClient:   d.CategoryClient,
		ModuleHintClient: d.ModuleHintClient,
		NotesClient:      d.NotesClient,
		CategoryBookkeeper: d.CategoryBookkeeper,
		NotesBookkeeper:  d.NotesBookkeeper,
		StatusBookkeeper: string(d.StatusBookkeeper),
		Flags: models.Flags{
			Duplicate: d.Flags.Duplicate,
			Late:      d.Flags.Late,
			HighRisk:  d.Flags.HighRisk,
		},
		IsDuplicate:   d.IsDuplicate,
		IsLateReceipt: d.IsLateReceipt,
		LockedAt:      d.LockedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		AttachmentCount: d.AttachmentCount,
	}
	if d.GSTCodeBookkeeper != nil {
		s := string(*d.GSTCodeBookkeeper)
		m.GSTCodeBookkeeper = &s
	}
	if d.ModuleRouting != nil {
		s := string(*d.ModuleRouting)
		m.ModuleRouting = &s
	}
	if d.LockedByRole != nil {
		s := string(*d.LockedByRole)
		m.LockedByRole = &s
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:    m.TransactionID,
		ClientID:         m.ClientID,
		JobID:            m.JobID,
		ModuleInstanceID: m.ModuleInstanceID,
		Date:             m.Date,
		Amount:           m.Amount,
		PayeeRaw:         m.PayeeRaw,
		DescriptionRaw:   m.DescriptionRaw,
		Source:           domain.TransactionSource(m.Source),
		CategoryClient:   m.CategoryClient,
		ModuleHintClient: m.ModuleHintClient,
		NotesClient:      m.NotesClient,
		CategoryBookkeeper: m.CategoryBookkeeper,
		NotesBookkeeper:  m.NotesBookkeeper,
		StatusBookkeeper: domain.TransactionStatus(m.StatusBookkeeper),
		Flags: domain.Flags{
			Duplicate: m.Flags.Duplicate,
			Late:      m.Flags.Late,
			HighRisk:  m.Flags.HighRisk,
		},
		IsDuplicate:   m.IsDuplicate,
		IsLateReceipt: m.IsLateReceipt,
		LockedAt:      m.LockedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		AttachmentCount: m.AttachmentCount,
	}
	if m.GSTCodeBookkeeper != nil {
		g := domain.GSTCode(*m.GSTCodeBookkeeper)
		d.GSTCodeBookkeeper = &g
	}
	if m.ModuleRouting != nil {
		r := domain.ModuleRouting(*m.ModuleRouting)
		d.ModuleRouting = &r
	}
	if m.LockedByRole != nil {
		r := domain.Role(*m.LockedByRole)
		d.LockedByRole = &r
	}
	return d
}

// ToDomainTransactionSlice converts model transactions to domain transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
