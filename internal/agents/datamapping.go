package agents

import (
	"context"
	"strings"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

// sectorBaselines seeds the data map with the categories a sector
// predictably processes before activity text scanning refines it.
var sectorBaselines = map[string]pipeline.DataMap{
	"saude": {
		Categories:    []string{"dados cadastrais", "dados de contato"},
		SensitiveData: []string{"dados de saúde", "histórico clínico"},
		Purposes:      []string{"prestação de serviços de saúde"},
		Recipients:    []string{"profissionais de saúde", "operadoras de planos"},
		Retention:     "20 anos após o último atendimento (prontuário)",
	},
	"financeiro": {
		Categories: []string{"dados cadastrais", "dados financeiros", "histórico de crédito"},
		Purposes:   []string{"análise de crédito", "prevenção à fraude"},
		Recipients: []string{"birôs de crédito", "instituições financeiras"},
		Retention:  "5 anos após o encerramento da relação contratual",
	},
	"ecommerce": {
		Categories: []string{"dados cadastrais", "dados de contato", "dados de pagamento", "histórico de compras"},
		Purposes:   []string{"processamento de pedidos", "entrega", "marketing"},
		Recipients: []string{"meios de pagamento", "transportadoras"},
		Retention:  "5 anos após a última transação",
	},
	"educacao": {
		Categories: []string{"dados cadastrais", "dados acadêmicos", "dados de responsáveis"},
		Purposes:   []string{"gestão acadêmica"},
		Recipients: []string{"órgãos reguladores de ensino"},
		Retention:  "permanente para registros acadêmicos",
	},
	"tecnologia": {
		Categories: []string{"dados cadastrais", "dados de uso", "identificadores de dispositivo"},
		Purposes:   []string{"provisão do serviço", "melhoria do produto"},
		Recipients: []string{"provedores de infraestrutura em nuvem"},
		Retention:  "enquanto durar a conta do usuário",
	},
	"geral": {
		Categories: []string{"dados cadastrais", "dados de contato"},
		Purposes:   []string{"execução da atividade descrita"},
		Retention:  "5 anos",
	},
}

// activitySignals augments the data map when the activity description
// mentions a processing pattern.
var activitySignals = []struct {
	keywords  []string
	category  string
	sensitive bool
}{
	{[]string{"pagamento", "cartão", "pix", "cobrança"}, "dados de pagamento", false},
	{[]string{"geolocalização", "localização", "gps"}, "dados de localização", false},
	{[]string{"biometria", "biométrico", "facial", "digital"}, "dados biométricos", true},
	{[]string{"saúde", "médico", "clínica", "prontuário", "telemedicina"}, "dados de saúde", true},
	{[]string{"criança", "adolescente", "menor", "infantil"}, "dados de crianças e adolescentes", true},
	{[]string{"religião", "sindical", "política", "orientação sexual"}, "dados sensíveis de convicção", true},
	{[]string{"cookie", "navegação", "analytics", "rastreamento"}, "dados de navegação", false},
	{[]string{"currículo", "recrutamento", "folha de pagamento", "funcionário"}, "dados de trabalhadores", false},
}

var transferSignals = []string{
	"internacional", "exterior", "transferência internacional",
	"aws", "google cloud", "azure", "nuvem estrangeira",
}

// DataMappingStage builds the personal data inventory for the activity
// from the sector baseline, activity description signals, and entities
// found in the source text. The stage is deterministic.
func DataMappingStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name:   pipeline.StageDataMapping,
		Status: pipeline.StatusDataMapped,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			s.DataMap = BuildDataMap(s)
			return nil
		},
	}
}

// BuildDataMap assembles the data map for a document state.
func BuildDataMap(s *pipeline.DocumentState) pipeline.DataMap {
	baseline, ok := sectorBaselines[s.IndustrySector]
	if !ok {
		baseline = sectorBaselines["geral"]
	}

	dm := pipeline.DataMap{
		Categories:    append([]string{}, baseline.Categories...),
		SensitiveData: append([]string{}, baseline.SensitiveData...),
		Purposes:      append([]string{}, baseline.Purposes...),
		Recipients:    append([]string{}, baseline.Recipients...),
		Retention:     baseline.Retention,
	}

	text := strings.ToLower(s.ActivityDescription + " " + s.OCRText)

	for _, signal := range activitySignals {
		if !containsAny(text, signal.keywords) {
			continue
		}
		if signal.sensitive {
			dm.SensitiveData = appendUnique(dm.SensitiveData, signal.category)
		} else {
			dm.Categories = appendUnique(dm.Categories, signal.category)
		}
	}

	if len(s.ExtractedEntities.Identifiers) > 0 {
		dm.Categories = appendUnique(dm.Categories, "identificadores nacionais (CPF/CNPJ)")
	}
	if len(s.ExtractedEntities.MonetaryValues) > 0 {
		dm.Categories = appendUnique(dm.Categories, "dados financeiros")
	}

	dm.InternationalTransfer = containsAny(text, transferSignals)
	return dm
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func appendUnique(items []string, item string) []string {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	return append(items, item)
}
