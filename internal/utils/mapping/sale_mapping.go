package mapping

import (
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/Omniportal2025/omniportal-sub001/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:             d.SaleID,
		AgentID:            nullString(d.AgentID),
		SellerName:         d.SellerName,
		BuyerName:          d.BuyerName,
		TotalContractPrice: d.TotalContractPrice,
		Project:            d.Project,
		Block:              d.Block,
		Lot:                d.Lot,
		ReservationDate:    d.ReservationDate,
		ReceiptPath:        nullString(d.ReceiptPath),
		SecondReceiptPath:  nullString(d.SecondReceiptPath),
		Status:             string(d.Status),
		Version:            d.Version,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:             m.SaleID,
		AgentID:            m.AgentID.String,
		SellerName:         m.SellerName,
		BuyerName:          m.BuyerName,
		TotalContractPrice: m.TotalContractPrice,
		Project:            m.Project,
		Block:              m.Block,
		Lot:                m.Lot,
		ReservationDate:    m.ReservationDate,
		ReceiptPath:        m.ReceiptPath.String,
		SecondReceiptPath:  m.SecondReceiptPath.String,
		Status:             domain.SaleStatus(m.Status),
		Version:            m.Version,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleSlice converts a slice of model Sales to a slice of domain Sales
func ToDomainSaleSlice(ms []models.Sale) []domain.Sale {
	ds := make([]domain.Sale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSale(m)
	}
	return ds
}
