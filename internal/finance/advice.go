package finance

import (
	"strings"

	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/report"
)

// AdviceTopic names which advice template a question selects.
type AdviceTopic string

const (
	TopicStudentLoans AdviceTopic = "student-loans"
	TopicGeneral      AdviceTopic = "general"
)

// ClassifyQuestion picks the advice topic. Only a case-insensitive
// "student loan" substring matters.
func ClassifyQuestion(question string) AdviceTopic {
	if strings.Contains(strings.ToLower(question), "student loan") {
		return TopicStudentLoans
	}
	return TopicGeneral
}

// GenerateAdvice returns the advice template for the question's topic.
// The persona is accepted for symmetry with the other operations and does
// not change the output.
func GenerateAdvice(question string, _ model.Persona) string {
	return AdviceReport(ClassifyQuestion(question)).Text()
}

// AdviceReport builds the fixed advice report for a topic.
func AdviceReport(topic AdviceTopic) *report.Report {
	if topic == TopicStudentLoans {
		return studentLoanAdvice()
	}
	return generalAdvice()
}

func studentLoanAdvice() *report.Report {
	return report.New("Managing Student Loans While Saving").
		Paragraph("Understanding Your Situation:",
			"Balancing student loan payments with savings requires a strategic approach that prioritizes both debt reduction and financial security.").
		Numbered("Practical Steps:",
			"**Build a small emergency fund** - Start with $500-1000 while paying loans",
			"**Use the debt avalanche method** - Pay minimums on all loans, extra on highest interest rate",
			"**Look for additional income** - Side hustles, tutoring, or part-time work",
			"**Reduce unnecessary expenses** - Review subscriptions, dining out, entertainment",
			"**Take advantage of tax benefits** - Student loan interest deduction",
		).
		Bullets("Saving Strategies:",
			"Automate small savings amounts ($25-50/month)",
			"Use cash-back apps and rewards programs",
			"Consider income-driven repayment plans if federal loans",
			"Look into loan forgiveness programs if eligible",
		).
		Paragraph("Long-term Approach:",
			"Focus on building good financial habits now. Even small amounts saved consistently will compound over time.")
}

func generalAdvice() *report.Report {
	return report.New("Personalized Financial Guidance").
		Paragraph("",
			"Thank you for your question. As your personal finance assistant, I'm here to help you make informed financial decisions.").
		Bullets("General Financial Guidance:",
			"Start with a budget to understand your money flow",
			"Build an emergency fund of 3-6 months expenses",
			"Pay off high-interest debt first",
			"Invest for long-term goals",
			"Review and adjust your plan regularly",
		).
		Paragraph("Next Steps:",
			"Feel free to ask specific questions about budgeting, saving, debt management, or investment planning. I can also help analyze your spending patterns.").
		Paragraph("Remember:",
			"Personal finance is personal - what works for others may need adjustment for your unique situation.")
}
