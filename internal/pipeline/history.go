// Package pipeline holds the content and the small state machines behind
// the history, build, test and status sections.
package pipeline

// CommitType colors the history timeline.
type CommitType string

const (
	Feat  CommitType = "feat"
	Chore CommitType = "chore"
	Init  CommitType = "init"
)

type Commit struct {
	Hash    string
	Message string
	Date    string
	Tag     string
	Type    CommitType
	Details string
}

// Commits is the career timeline, newest first.
var Commits = []Commit{
	{
		Hash:    "8e7f2a1",
		Message: "feat: Platform Engineer @ Northwind Cloud",
		Date:    "2024 - now",
		Tag:     "v3.0.0",
		Type:    Feat,
		Details: "Runs the Kubernetes platform behind a few hundred services. GitOps with ArgoCD, AWS landing zones in Terraform, and an on-call rotation that mostly sleeps.",
	},
	{
		Hash:    "7f2a9c1",
		Message: "feat: Backend Developer @ Fjord Payments",
		Date:    "2021 - 2024",
		Tag:     "v2.4.0",
		Type:    Feat,
		Details: "Built Go services processing millions of daily requests on EKS. Event-driven settlement with SQS and Kafka, PostgreSQL tuning, and the CI pipelines everyone else copied.",
	},
	{
		Hash:    "b4d8e2f",
		Message: "docs: Linux & Containers Certification",
		Date:    "2021",
		Tag:     "v1.5.0",
		Type:    Chore,
		Details: "Linux administration, shell scripting, Docker and Kubernetes fundamentals.",
	},
	{
		Hash:    "c9a1b3d",
		Message: "init: Full Stack Developer Bootcamp",
		Date:    "2019 - 2020",
		Tag:     "v1.0.0",
		Type:    Init,
		Details: "Shipped full-stack apps with Go, React and PostgreSQL schemas that were more complex than they needed to be.",
	},
}
