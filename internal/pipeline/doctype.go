package pipeline

import (
	"encoding/json"
	"fmt"
)

// DocumentType identifies the kind of regulatory document the workflow produces.
type DocumentType string

const (
	TypePrivacyPolicy           DocumentType = "privacy_policy"
	TypeConsentForm             DocumentType = "consent_form"
	TypeContractClause          DocumentType = "contract_clause"
	TypeCommitteeMinutes        DocumentType = "committee_minutes"
	TypeCodeOfConduct           DocumentType = "code_of_conduct"
	TypeDataProcessingAgreement DocumentType = "data_processing_agreement"
	TypeBreachNotification      DocumentType = "breach_notification"
	TypeImpactAssessment        DocumentType = "impact_assessment"
)

// DocumentTypes returns all supported document types in declaration order.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		TypePrivacyPolicy,
		TypeConsentForm,
		TypeContractClause,
		TypeCommitteeMinutes,
		TypeCodeOfConduct,
		TypeDataProcessingAgreement,
		TypeBreachNotification,
		TypeImpactAssessment,
	}
}

// ParseDocumentType validates and converts a string to a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	switch t {
	case TypePrivacyPolicy, TypeConsentForm, TypeContractClause,
		TypeCommitteeMinutes, TypeCodeOfConduct, TypeDataProcessingAgreement,
		TypeBreachNotification, TypeImpactAssessment:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, s)
	}
}

// IsValid reports whether the document type is one of the supported kinds.
func (t DocumentType) IsValid() bool {
	_, err := ParseDocumentType(string(t))
	return err == nil
}

func (t DocumentType) String() string {
	return string(t)
}

// UnmarshalJSON validates the document type during JSON deserialization.
func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseDocumentType(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
