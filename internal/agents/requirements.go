package agents

import "github.com/privacypoint/privacypoint/internal/pipeline"

// lgpdRequirements are the statutory obligations every generated document
// is screened against. Keywords are matched case-insensitively against the
// document text.
var lgpdRequirements = []pipeline.Requirement{
	{
		ID:          "LGPD_001",
		Description: "Identificação do controlador de dados (Art. 5º, VI)",
		Keywords:    []string{"controlador", "responsável pelo tratamento", "cnpj"},
		Risk:        pipeline.RiskCritical,
	},
	{
		ID:          "LGPD_002",
		Description: "Base legal para o tratamento (Art. 7º)",
		Keywords:    []string{"base legal", "consentimento", "legítimo interesse", "obrigação legal"},
		Risk:        pipeline.RiskCritical,
	},
	{
		ID:          "LGPD_003",
		Description: "Finalidade específica do tratamento (Art. 6º, I)",
		Keywords:    []string{"finalidade", "propósito", "objetivo do tratamento"},
		Risk:        pipeline.RiskCritical,
	},
	{
		ID:          "LGPD_004",
		Description: "Direitos do titular de dados (Art. 18)",
		Keywords:    []string{"direitos do titular", "acesso", "correção", "eliminação", "portabilidade"},
		Risk:        pipeline.RiskCritical,
	},
	{
		ID:          "LGPD_005",
		Description: "Prazo de retenção de dados (Art. 15 e 16)",
		Keywords:    []string{"retenção", "prazo de armazenamento", "término do tratamento"},
		Risk:        pipeline.RiskHigh,
	},
	{
		ID:          "LGPD_006",
		Description: "Compartilhamento com terceiros (Art. 7º, § 5º)",
		Keywords:    []string{"compartilhamento", "terceiros", "operadores", "destinatários"},
		Risk:        pipeline.RiskHigh,
	},
	{
		ID:          "LGPD_007",
		Description: "Medidas de segurança da informação (Art. 46)",
		Keywords:    []string{"segurança", "medidas técnicas", "criptografia", "controle de acesso"},
		Risk:        pipeline.RiskHigh,
	},
	{
		ID:          "LGPD_008",
		Description: "Canal de contato do encarregado (Art. 41)",
		Keywords:    []string{"encarregado", "dpo", "canal de contato", "e-mail"},
		Risk:        pipeline.RiskMedium,
	},
	{
		ID:          "LGPD_009",
		Description: "Transferência internacional de dados (Art. 33)",
		Keywords:    []string{"transferência internacional", "cláusulas contratuais", "países"},
		Risk:        pipeline.RiskMedium,
	},
	{
		ID:          "LGPD_010",
		Description: "Revisão e atualização do documento",
		Keywords:    []string{"atualização", "revisão", "vigência", "versão"},
		Risk:        pipeline.RiskLow,
	},
}

// anpdRequirements cover guidance issued by the national authority beyond
// the statute itself.
var anpdRequirements = []pipeline.Requirement{
	{
		ID:          "ANPD_001",
		Description: "Procedimento de comunicação de incidentes (Resolução CD/ANPD nº 15/2024)",
		Keywords:    []string{"incidente", "comunicação", "notificação", "prazo"},
		Risk:        pipeline.RiskHigh,
	},
	{
		ID:          "ANPD_002",
		Description: "Registro das operações de tratamento (Art. 37)",
		Keywords:    []string{"registro", "operações de tratamento", "inventário"},
		Risk:        pipeline.RiskMedium,
	},
	{
		ID:          "ANPD_003",
		Description: "Relatório de impacto quando exigível (Art. 38)",
		Keywords:    []string{"relatório de impacto", "ripd", "alto risco"},
		Risk:        pipeline.RiskMedium,
	},
}

// sectorRequirements hold additional obligations keyed by industry sector.
// Sectors without an entry are evaluated against an empty set, which scores
// neutral.
var sectorRequirements = map[string][]pipeline.Requirement{
	"saude": {
		{
			ID:          "SAUDE_001",
			Description: "Tratamento de dados sensíveis de saúde (Art. 11)",
			Keywords:    []string{"dados sensíveis", "saúde", "consentimento específico"},
			Risk:        pipeline.RiskCritical,
		},
		{
			ID:          "SAUDE_002",
			Description: "Sigilo profissional e prontuários (CFM Resolução nº 1.821/2007)",
			Keywords:    []string{"sigilo", "prontuário", "profissional de saúde"},
			Risk:        pipeline.RiskHigh,
		},
	},
	"financeiro": {
		{
			ID:          "FIN_001",
			Description: "Sigilo bancário (LC nº 105/2001)",
			Keywords:    []string{"sigilo bancário", "dados financeiros", "instituição financeira"},
			Risk:        pipeline.RiskCritical,
		},
		{
			ID:          "FIN_002",
			Description: "Segurança cibernética do sistema financeiro (Resolução CMN nº 4.893/2021)",
			Keywords:    []string{"segurança cibernética", "política de segurança", "resposta a incidentes"},
			Risk:        pipeline.RiskHigh,
		},
	},
	"ecommerce": {
		{
			ID:          "ECOM_001",
			Description: "Informação clara ao consumidor (CDC - Lei nº 8.078/1990)",
			Keywords:    []string{"consumidor", "informação clara", "oferta"},
			Risk:        pipeline.RiskHigh,
		},
		{
			ID:          "ECOM_002",
			Description: "Uso de cookies e rastreamento",
			Keywords:    []string{"cookies", "rastreamento", "preferências"},
			Risk:        pipeline.RiskMedium,
		},
	},
}
