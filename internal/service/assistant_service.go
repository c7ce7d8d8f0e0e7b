package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carelink/internal/domain/entity"
	"carelink/internal/domain/repository"

	"carelink/internal/infrastructure/ai"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const doctorSystemPrompt = `You are an AI medical assistant helping doctors analyze patient data and provide recommendations.
You can:
- Analyze health metrics and identify patterns or anomalies
- Provide differential diagnoses based on symptoms
- Suggest relevant tests or examinations
- Offer treatment recommendations (always noting they need doctor approval)
- Interpret medical records and imaging

Always be clear that your suggestions need to be verified by the doctor and are not final diagnoses.
Use medical terminology appropriately but explain complex terms.`

const patientSystemPrompt = `You are an AI health assistant helping patients understand their health better.
You can:
- Answer general health questions
- Explain medical terms in simple language
- Provide basic health advice
- Help understand test results (in general terms)

Important:
- Always advise consulting their doctor for specific medical advice
- Never provide diagnoses or prescribe medications
- Be empathetic and reassuring while being informative
- Encourage healthy lifestyle choices`

// PatientContext is the clinical snapshot attached to assistant prompts.
type PatientContext struct {
	FullName   string
	Age        int
	Gender     string
	BloodGroup string
	Metrics    []entity.HealthMetric
	Records    []entity.MedicalRecord
}

// AssistantService assembles patient context and proxies chat and
// trend-analysis requests to the configured language model.
type AssistantService struct {
	db          *gorm.DB
	log         *logrus.Logger
	llm         ai.LLMProvider
	patientRepo repository.PatientProfileRepository
	metricRepo  repository.HealthMetricRepository
	recordRepo  repository.MedicalRecordRepository
}

func NewAssistantService(
	db *gorm.DB,
	log *logrus.Logger,
	llm ai.LLMProvider,
	patientRepo repository.PatientProfileRepository,
	metricRepo repository.HealthMetricRepository,
	recordRepo repository.MedicalRecordRepository,
) *AssistantService {
	return &AssistantService{
		db:          db,
		log:         log,
		llm:         llm,
		patientRepo: patientRepo,
		metricRepo:  metricRepo,
		recordRepo:  recordRepo,
	}
}

// SystemPromptFor returns the assistant persona for a role.
func SystemPromptFor(role string) string {
	if role == entity.RoleDoctor {
		return doctorSystemPrompt
	}
	return patientSystemPrompt
}

// Chat sends a message to the model, optionally enriched with the
// given patient's recent data.
func (s *AssistantService) Chat(ctx context.Context, role string, message string, patientID *uuid.UUID) (string, error) {
	systemPrompt := SystemPromptFor(role)

	userPrompt := message
	if patientID != nil {
		pc, err := s.gatherPatientContext(ctx, *patientID)
		if err != nil {
			return "", err
		}
		if pc != nil {
			userPrompt = FormatPatientContext(pc) + "\n\n" + message
		}
	}

	reply, err := s.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		s.log.Warnf("Assistant generation failed: %+v", err)
		return "", err
	}
	return reply, nil
}

// AnalyzeTrends asks the model for a health trend summary built from
// the patient's last 30 days of metrics.
func (s *AssistantService) AnalyzeTrends(ctx context.Context, patientID uuid.UUID) (string, error) {
	pc, err := s.gatherPatientContext(ctx, patientID)
	if err != nil {
		return "", err
	}
	if pc == nil {
		return "", gorm.ErrRecordNotFound
	}

	prompt := fmt.Sprintf(`Based on the following patient data, provide a brief health trend analysis:

Patient: %s, Age: %s, Gender: %s

Recent Metrics:
%s

Provide:
1. Overall health status
2. Any concerning trends
3. Recommendations for the doctor`,
		pc.FullName, formatAge(pc.Age), pc.Gender, FormatMetrics(pc.Metrics))

	reply, err := s.llm.Generate(ctx, doctorSystemPrompt, prompt)
	if err != nil {
		s.log.Warnf("Trend analysis generation failed: %+v", err)
		return "", err
	}
	return reply, nil
}

func (s *AssistantService) gatherPatientContext(ctx context.Context, patientID uuid.UUID) (*PatientContext, error) {
	db := s.db.WithContext(ctx)

	profile, err := s.patientRepo.FindByUserID(db, patientID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	since := time.Now().UTC().AddDate(0, 0, -30)
	metrics, err := s.metricRepo.FindSince(db, patientID, since)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.FindRecentByPatientID(db, patientID, 10)
	if err != nil {
		return nil, err
	}

	return &PatientContext{
		FullName:   profile.FullName,
		Age:        profile.Age(time.Now()),
		Gender:     profile.Gender,
		BloodGroup: profile.BloodGroup,
		Metrics:    metrics,
		Records:    records,
	}, nil
}

// FormatPatientContext renders the clinical snapshot as prompt text.
func FormatPatientContext(pc *PatientContext) string {
	var b strings.Builder
	b.WriteString("Patient Context:\n")
	fmt.Fprintf(&b, "- Name: %s\n", pc.FullName)
	fmt.Fprintf(&b, "- Age: %s\n", formatAge(pc.Age))
	fmt.Fprintf(&b, "- Gender: %s\n", pc.Gender)
	fmt.Fprintf(&b, "- Blood Group: %s\n", pc.BloodGroup)
	b.WriteString("\nRecent Health Metrics:\n")
	b.WriteString(FormatMetrics(pc.Metrics))
	b.WriteString("\nMedical History:\n")
	b.WriteString(FormatRecords(pc.Records))
	return b.String()
}

// FormatMetrics renders metric rows as prompt bullet lines.
func FormatMetrics(metrics []entity.HealthMetric) string {
	if len(metrics) == 0 {
		return "No recent metrics available.\n"
	}
	var b strings.Builder
	for _, m := range metrics {
		fmt.Fprintf(&b, "- %s: %s %s (%s)\n", m.MetricType, m.Value, m.Unit, m.RecordedAt.Format("2006-01-02"))
	}
	return b.String()
}

// FormatRecords renders medical record rows as prompt bullet lines.
func FormatRecords(records []entity.MedicalRecord) string {
	if len(records) == 0 {
		return "No medical records available.\n"
	}
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "- [%s] %s: %s (%s)\n", r.RecordType, r.Title, r.Description, r.UploadedAt.Format("2006-01-02"))
	}
	return b.String()
}

func formatAge(age int) string {
	if age < 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d", age)
}
