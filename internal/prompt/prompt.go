// Package prompt builds the stage prompts for the lab-report pipeline.
package prompt

import (
	"fmt"

	"github.com/srinathstart/HealthSyncAI/internal/llm"
)

// BuildRawExtractionPrompt asks the model to turn raw report text into a
// single JSON object of camelCase key-value pairs.
func BuildRawExtractionPrompt(documentText, formatInstructions string) string {
	return fmt.Sprintf(`You are a highly skilled data extraction and conversion assistant. Your task is to extract key-value pairs from the provided medical report and structure them into a JSON object.

**Input:**
%s

**Instructions:**
1. **Identify Key-Value Pairs:** Carefully read through the medical report and identify all relevant information that can be represented as a key-value pair.
2. **Naming Conventions:**
   * Keys should be in **camelCase**.
   * Keys should be descriptive and concise (e.g., patientName, dateOfBirth, diagnosis, medications).
   * Data Types: Ensure the values are of the correct data type (e.g., numbers, strings, or booleans). If a field contains multiple items (like a list of medications), use a JSON array.
3. **Structure:** The final output must be a single, valid JSON object. **Crucially, output ONLY the JSON object and nothing else. Do not include any introductory or concluding text, explanations, or conversational phrases outside of the JSON block.**

%s`, documentText, formatInstructions)
}

// BuildParameterSelectionPrompt asks the model to reduce a full report
// record to the report date and the compulsory chart parameters.
func BuildParameterSelectionPrompt(recordJSON, formatInstructions string) string {
	return fmt.Sprintf(`You are a highly skilled medical data extraction assistant. Your task is to analyze a JSON object containing medical report data and extract the report date and exactly four compulsory health parameters based on the report type.

**Input JSON:**
%s

**Instructions:**
1. **Extract Report Date:** Find the report date and standardize it to 'YYYY-MM-DD'.
2. **Determine Report Type:** Identify the report type from the structure/content of the report (e.g., Liver Function Test, Kidney Function Test, Complete Blood Count, Lipid Profile). For this specific input, the report type is **Routine Urine Examination**.
3. **Select Compulsory Parameters:** Extract **exactly four parameters** based on the report type. Since the input is a **Routine Urine Examination**, select the four most clinically relevant parameters from the available options. Use: specificGravity, proteins, sugar, and pusCells.
   (Ignore any other parameters in the report. If any of the four parameters are missing in the report, only include the ones present; do not add unrelated parameters.)
4. **Create New JSON:** Return a JSON object with:
   - reportDate: standardized date
   - healthParameters: dictionary containing **only the four compulsory parameters**
5. **Output Requirement:** Return only a single valid JSON object strictly following the required format. Do not include explanations, extra text, or conversational notes.

%s`, recordJSON, formatInstructions)
}

// scoringSystemPrompt instructs the model to grade the report. The clinical
// reference ranges live in the model, not in this codebase.
const scoringSystemPrompt = `You are an expert medical AI assistant with deep clinical knowledge. Your task is to analyze a user's medical lab report provided as JSON data along with the user's age and gender. Perform the following carefully:
1. Interpret each lab parameter robustly, recognizing synonyms and variations in naming.
2. For each lab parameter, use your internal knowledge of trusted clinical reference ranges to evaluate whether the value is normal, mildly abnormal, or significantly abnormal for the given age and gender.
3. Start with a health score of 100. Deduct points based on the severity and clinical significance of each abnormal value, giving more weight to critical parameters.
4. Output a final JSON with the following fields:
   - "score" (number between 0 and 100, where 100 is perfect health)
   - "summary_reasoning" (a brief, clear explanation of the overall score and main concerns)
   - "detailed_breakdown" (an array of objects, one for each lab parameter analyzed. Each object should have:
     - "parameter": The name of the lab test.
     - "value": The patient's reported value.
     - "status": "Normal", "Mildly Abnormal", or "Significantly Abnormal".
     - "analysis": A concise explanation of why the value is concerning or normal, and its impact on the score.)
5. The final output must be a single, valid JSON object, enclosed only by ` + "```json ... ```" + `.
Always prioritize clinical validity, clarity, and patient safety in your reasoning.`

// BuildScoringMessages builds the system and user turns for the scoring stage.
func BuildScoringMessages(age int, gender, labDataJSON string) []llm.Message {
	user := fmt.Sprintf("Patient Age: %d\nPatient Gender: %s\nLab Report Data:\n%s", age, gender, labDataJSON)
	return []llm.Message{
		llm.System(scoringSystemPrompt),
		llm.User(user),
	}
}
