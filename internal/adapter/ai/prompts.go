package ai

import (
	"fmt"

	"github.com/prepforge/ai-interview-coach/internal/adapter/ai/tokencount"
)

// PromptBuilder renders the pipeline prompts, truncating untrusted free
// text (transcripts, resumes) to a token budget first.
type PromptBuilder struct {
	Counter     *tokencount.Counter
	TokenBudget int
}

// NewPromptBuilder constructs a PromptBuilder with the given token budget.
func NewPromptBuilder(budget int) *PromptBuilder {
	return &PromptBuilder{Counter: tokencount.DefaultCounter, TokenBudget: budget}
}

func (p *PromptBuilder) budgeted(text string) string {
	if p.Counter == nil || p.TokenBudget <= 0 {
		return text
	}
	return p.Counter.Truncate(text, p.TokenBudget)
}

// ContentFeedback builds the answer-quality prompt. The model is asked for
// strict JSON with rating, feedback, strengths, and recommendations.
func (p *PromptBuilder) ContentFeedback(question, transcript string, durationSeconds int) string {
	return fmt.Sprintf(`
Question: %s
User Answer: %s
Response Duration: %d seconds

Based on the question and user's transcribed answer, please provide:
1. A rating from 1-10 for the answer quality
2. Detailed feedback with areas of improvement (3-5 lines)
3. Key strengths demonstrated
4. Specific recommendations

Respond in JSON format with "rating", "feedback", "strengths", and "recommendations" fields.`,
		question, p.budgeted(transcript), durationSeconds)
}

// Behavioral builds the delivery-assessment prompt. Only the duration, its
// appropriateness label, and the transcript are sent; never raw media.
func (p *PromptBuilder) Behavioral(question string, durationSeconds int, transcript string) string {
	return fmt.Sprintf(`
You are an expert behavioral interview coach analyzing a candidate's interview performance.

Question Asked: "%s"
Response Duration: %d seconds (%s)
Candidate's Response: "%s"

Based on the response content and duration, provide a behavioral assessment. Consider:
1. Response length appropriateness (ideal: 60-180 seconds)
2. Content structure and clarity from the text
3. Professional communication indicators
4. Engagement level based on response completeness

Provide your analysis in JSON format:
{
  "bodyLanguageScore": <number 1-10>,
  "eyeContactScore": <number 1-10>,
  "confidenceScore": <number 1-10>,
  "pacingScore": <number 1-10>,
  "engagementScore": <number 1-10>,
  "overallVideoBehaviorScore": <number 1-10>,
  "behavioralFeedback": "<detailed feedback on presentation style, communication approach, and areas for improvement>",
  "strengths": ["<strength1>", "<strength2>", "<strength3>"],
  "areasForImprovement": ["<area1>", "<area2>"],
  "recommendedActions": "<specific actions to improve in next interview>"
}

Base scores on:
- Duration appropriateness (too short/too long affects pacing)
- Response completeness (affects engagement and confidence scores)
- Professional tone in the text (affects overall score)`,
		question, durationSeconds, AppropriatenessLabel(durationSeconds), p.budgeted(transcript))
}

// TechnicalQuestions builds the technical question-generation prompt. The
// resume excerpt is optional and capped to 2000 characters before it is
// token-budgeted.
func (p *PromptBuilder) TechnicalQuestions(jobPosition, jobDesc, jobExperience, resumeText string, n int) string {
	resumePart := ""
	withResume := ""
	if resumeText != "" {
		excerpt := resumeText
		if len(excerpt) > 2000 {
			excerpt = excerpt[:2000]
		}
		resumePart = fmt.Sprintf("Resume Summary: %s\n", p.budgeted(excerpt))
		withResume = " and the candidate's resume"
	}
	return fmt.Sprintf(`
Job Positions: %s,
Job Description: %s,
Years of Experience: %s.
%sBased on this information%s, please provide %d technical interview questions with answers in JSON format, ensuring "Question" and "Answer" are fields in the JSON.`,
		jobPosition, jobDesc, jobExperience, resumePart, withResume, n)
}

// BehavioralQuestions builds the STAR-oriented behavioral question prompt.
func (p *PromptBuilder) BehavioralQuestions(jobPosition, jobDesc, jobExperience string, n int) string {
	return fmt.Sprintf(`Generate %d behavioral and situational interview questions for the following position. These questions should be suitable for a one-on-one video interview format and require 1-3 minute answers.

Job Position: %s
Job Description: %s
Required Experience: %s

Guidelines for questions:
1. Use STAR method compatible questions (Situation, Task, Action, Result)
2. Focus on real-world scenarios and challenges
3. Questions should assess: communication, problem-solving, teamwork, leadership, adaptability
4. Include behavioral patterns that can be observed in video
5. Questions should take 1-3 minutes to answer properly
6. Include both technical and soft skills assessment

Please provide exactly %d questions in the following JSON format:
{
  "questions": [
    {
      "question": "<actual question text>",
      "category": "<Communication|Leadership|Problem-Solving|Teamwork|Adaptability|Technical>",
      "difficulty": "<easy|medium|hard>",
      "expectedAnswerPoints": ["<point1>", "<point2>", "<point3>"],
      "evaluationCriteria": "<what to look for in answer>",
      "sampleAnswer": "<brief sample of good answer>"
    }
  ],
  "description": "One-on-One Behavioral Interview"
}`, n, jobPosition, jobDesc, jobExperience, n)
}
