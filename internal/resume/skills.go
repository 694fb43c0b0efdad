package resume

import "strings"

// skillLexicon is the curated list of skills recognized in résumé text.
// Order matters: GuessSkills preserves it, so more common skills surface
// first in the extracted list.
var skillLexicon = []string{
	"Python", "Java", "Go", "JavaScript", "TypeScript", "C++", "C#", "Rust",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "FastAPI",
	"Spring", "Spring Boot", ".NET",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform",
	"Linux", "Git", "CI/CD", "Jenkins",
	"Kafka", "RabbitMQ", "Spark", "Hadoop", "Airflow",
	"Machine Learning", "Deep Learning", "NLP", "TensorFlow", "PyTorch",
	"Pandas", "NumPy", "Scikit-learn",
	"REST", "GraphQL", "gRPC", "Microservices",
	"Agile", "Scrum",
}

// GuessSkills scans résumé text for known skills (case-insensitive substring
// match) and returns them in lexicon order.
func GuessSkills(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, skill := range skillLexicon {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	return found
}
