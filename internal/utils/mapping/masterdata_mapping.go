package mapping

import (
	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/quillbooks/quillbooks/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:    d.PeriodID,
		Name:        d.Name,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsClosed:    d.IsClosed,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:    m.PeriodID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		IsClosed:    m.IsClosed,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTaxCode converts a domain TaxCode to a model TaxCode.
func ToModelTaxCode(d domain.TaxCode) models.TaxCode {
	return models.TaxCode{
		Code:            d.Code,
		Description:     d.Description,
		TaxType:         string(d.TaxType),
		Rate:            d.Rate,
		AffectedAccount: d.AffectedAccount,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxCode converts a model TaxCode to a domain TaxCode.
func ToDomainTaxCode(m models.TaxCode) domain.TaxCode {
	return domain.TaxCode{
		Code:            m.Code,
		Description:     m.Description,
		TaxType:         domain.TaxType(m.TaxType),
		Rate:            m.Rate,
		AffectedAccount: m.AffectedAccount,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSequence converts a model DocumentSequence to the domain representation.
func ToDomainSequence(m models.DocumentSequence) domain.DocumentSequence {
	return domain.DocumentSequence{
		Name:        m.Name,
		Prefix:      m.Prefix,
		NextValue:   m.NextValue,
		PadWidth:    m.PadWidth,
		Format:      m.Format,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelGSTReturn converts a domain GSTReturn to a model GSTReturn.
func ToModelGSTReturn(d domain.GSTReturn) models.GSTReturn {
	return models.GSTReturn{
		ReturnID:              d.ReturnID,
		ReturnNo:              d.ReturnNo,
		PeriodStart:           d.PeriodStart,
		PeriodEnd:             d.PeriodEnd,
		StandardRatedSupplies: d.StandardRatedSupplies,
		ZeroRatedSupplies:     d.ZeroRatedSupplies,
		ExemptSupplies:        d.ExemptSupplies,
		TotalSupplies:         d.TotalSupplies,
		TaxablePurchases:      d.TaxablePurchases,
		OutputTax:             d.OutputTax,
		InputTax:              d.InputTax,
		Adjustments:           d.Adjustments,
		NetPayable:            d.NetPayable,
		Status:                string(d.Status),
		SubmissionRef:         d.SubmissionRef,
		SubmissionDate:        d.SubmissionDate,
		SettlementEntryID:     d.SettlementEntryID,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGSTReturn converts a model GSTReturn to a domain GSTReturn.
func ToDomainGSTReturn(m models.GSTReturn) domain.GSTReturn {
	return domain.GSTReturn{
		ReturnID:              m.ReturnID,
		ReturnNo:              m.ReturnNo,
		PeriodStart:           m.PeriodStart,
		PeriodEnd:             m.PeriodEnd,
		StandardRatedSupplies: m.StandardRatedSupplies,
		ZeroRatedSupplies:     m.ZeroRatedSupplies,
		ExemptSupplies:        m.ExemptSupplies,
		TotalSupplies:         m.TotalSupplies,
		TaxablePurchases:      m.TaxablePurchases,
		OutputTax:             m.OutputTax,
		InputTax:              m.InputTax,
		Adjustments:           m.Adjustments,
		NetPayable:            m.NetPayable,
		Status:                domain.GSTReturnStatus(m.Status),
		SubmissionRef:         m.SubmissionRef,
		SubmissionDate:        m.SubmissionDate,
		SettlementEntryID:     m.SettlementEntryID,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode:  m.CurrencyCode,
		Symbol:        m.Symbol,
		Name:          m.Name,
		DecimalPlaces: m.DecimalPlaces,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCurrency converts a domain Currency to a model Currency.
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode:  d.CurrencyCode,
		Symbol:        d.Symbol,
		Name:          d.Name,
		DecimalPlaces: d.DecimalPlaces,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		RateID:        m.RateID,
		FromCurrency:  m.FromCurrency,
		ToCurrency:    m.ToCurrency,
		Rate:          m.Rate,
		EffectiveDate: m.EffectiveDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		RateID:        d.RateID,
		FromCurrency:  d.FromCurrency,
		ToCurrency:    d.ToCurrency,
		Rate:          d.Rate,
		EffectiveDate: d.EffectiveDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}
