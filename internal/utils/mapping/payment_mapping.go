package mapping

import (
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/Omniportal2025/omniportal-sub001/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelPayment converts a domain Payment to a model Payment. The period
// must already be a valid YYYY-MM month.
func ToModelPayment(d domain.Payment) (models.Payment, error) {
	period, err := domain.ParsePaymentPeriod(d.PaymentPeriod)
	if err != nil {
		return models.Payment{}, err
	}
	m := models.Payment{
		PaymentID:          d.PaymentID,
		PayerName:          d.PayerName,
		Project:            d.Project,
		Block:              d.Block,
		Lot:                d.Lot,
		Amount:             d.Amount,
		DueDate:            string(d.DueDate),
		PaymentDate:        d.PaymentDate,
		PaymentPeriod:      period,
		ReferenceNumber:    d.ReferenceNumber,
		VAT:                string(d.VAT),
		Status:             string(d.Status),
		ReceiptPath:        d.ReceiptPath,
		AcknowledgmentPath: nullString(d.AcknowledgmentPath),
		Version:            d.Version,
		DeletedAt:          d.DeletedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
	if d.Penalty != nil {
		m.Penalty = decimal.NewNullDecimal(*d.Penalty)
	}
	return m, nil
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	d := domain.Payment{
		PaymentID:          m.PaymentID,
		PayerName:          m.PayerName,
		Project:            m.Project,
		Block:              m.Block,
		Lot:                m.Lot,
		Amount:             m.Amount,
		DueDate:            domain.DueDate(m.DueDate),
		PaymentDate:        m.PaymentDate,
		PaymentPeriod:      m.PaymentPeriod.Format(domain.PaymentPeriodLayout),
		ReferenceNumber:    m.ReferenceNumber,
		VAT:                domain.VATClassification(m.VAT),
		Status:             domain.PaymentStatus(m.Status),
		ReceiptPath:        m.ReceiptPath,
		AcknowledgmentPath: m.AcknowledgmentPath.String,
		Version:            m.Version,
		DeletedAt:          m.DeletedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
	if m.Penalty.Valid {
		penalty := m.Penalty.Decimal
		d.Penalty = &penalty
	}
	return d
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
