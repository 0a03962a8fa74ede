package agents

import "github.com/privacypoint/privacypoint/internal/pipeline"

// defaultSections lists the baseline section titles each document type must
// contain when the classification model proposes none.
var defaultSections = map[pipeline.DocumentType][]string{
	pipeline.TypePrivacyPolicy: {
		"Identificação do Controlador",
		"Dados Pessoais Coletados",
		"Finalidades do Tratamento",
		"Base Legal",
		"Compartilhamento de Dados",
		"Direitos do Titular",
		"Retenção e Eliminação",
		"Segurança da Informação",
		"Canal de Contato do Encarregado",
	},
	pipeline.TypeConsentForm: {
		"Identificação das Partes",
		"Dados Objeto do Consentimento",
		"Finalidade Específica",
		"Forma de Revogação",
		"Prazo de Validade",
	},
	pipeline.TypeContractClause: {
		"Definições",
		"Obrigações de Proteção de Dados",
		"Responsabilidade das Partes",
		"Subcontratação",
		"Término e Devolução de Dados",
	},
	pipeline.TypeCommitteeMinutes: {
		"Identificação da Reunião",
		"Participantes",
		"Pauta",
		"Deliberações",
		"Encaminhamentos",
	},
	pipeline.TypeCodeOfConduct: {
		"Objetivo e Abrangência",
		"Princípios de Proteção de Dados",
		"Condutas Esperadas",
		"Canal de Denúncias",
		"Sanções",
	},
	pipeline.TypeDataProcessingAgreement: {
		"Identificação de Controlador e Operador",
		"Objeto e Instruções de Tratamento",
		"Medidas de Segurança",
		"Subcontratação",
		"Notificação de Incidentes",
		"Auditoria",
		"Término e Eliminação de Dados",
	},
	pipeline.TypeBreachNotification: {
		"Descrição do Incidente",
		"Dados e Titulares Afetados",
		"Medidas de Contenção",
		"Riscos aos Titulares",
		"Medidas de Mitigação",
		"Canal de Comunicação",
	},
	pipeline.TypeImpactAssessment: {
		"Descrição do Tratamento",
		"Necessidade e Proporcionalidade",
		"Identificação de Riscos",
		"Medidas de Mitigação",
		"Parecer do Encarregado",
	},
}

// DefaultSections returns the baseline required sections for a document type.
func DefaultSections(t pipeline.DocumentType) []string {
	sections := defaultSections[t]
	out := make([]string, len(sections))
	copy(out, sections)
	return out
}
