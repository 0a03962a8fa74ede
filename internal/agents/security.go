package agents

import (
	"context"
	"strings"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

var baselineMeasures = []string{
	"controle de acesso baseado em função",
	"criptografia de dados em trânsito (TLS 1.2+)",
	"registro de logs de acesso e auditoria",
	"gestão de backups com teste de restauração",
	"plano de resposta a incidentes",
}

// CyberSecurityStage derives the technical and organizational measures the
// document must require from the data map. The assessment is deterministic:
// sensitive categories and transfer patterns escalate the risk and expand
// the measure set.
func CyberSecurityStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name:   pipeline.StageCyberSecurity,
		Status: pipeline.StatusSecurityReviewed,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			s.SecurityAssessment = AssessSecurity(s.DataMap)
			return nil
		},
	}
}

// AssessSecurity evaluates a data map into a security assessment.
func AssessSecurity(dm pipeline.DataMap) pipeline.SecurityAssessment {
	assessment := pipeline.SecurityAssessment{
		RiskLevel:        pipeline.RiskLow,
		RequiredMeasures: append([]string{}, baselineMeasures...),
		Concerns:         []string{},
	}

	raise := func(level pipeline.RiskLevel) {
		if level.Weight() > assessment.RiskLevel.Weight() {
			assessment.RiskLevel = level
		}
	}

	if len(dm.SensitiveData) > 0 {
		raise(pipeline.RiskHigh)
		assessment.RequiredMeasures = append(assessment.RequiredMeasures,
			"criptografia de dados sensíveis em repouso",
			"segregação de acesso a dados sensíveis",
		)
		assessment.Concerns = append(assessment.Concerns,
			"tratamento de dados sensíveis exige salvaguardas do Art. 11",
		)
	}

	if containsAny(strings.Join(dm.Categories, " "), []string{"pagamento", "financeiro"}) {
		raise(pipeline.RiskMedium)
		assessment.RequiredMeasures = append(assessment.RequiredMeasures,
			"tokenização de dados de pagamento",
		)
	}

	if dm.InternationalTransfer {
		raise(pipeline.RiskMedium)
		assessment.RequiredMeasures = append(assessment.RequiredMeasures,
			"cláusulas contratuais para transferência internacional (Art. 33)",
		)
		assessment.Concerns = append(assessment.Concerns,
			"transferência internacional requer mecanismo de adequação",
		)
	}

	for _, category := range dm.SensitiveData {
		if category == "dados de crianças e adolescentes" {
			raise(pipeline.RiskCritical)
			assessment.RequiredMeasures = append(assessment.RequiredMeasures,
				"verificação de consentimento parental (Art. 14)",
			)
		}
	}

	return assessment
}
