package shell

var jokes = []string{
	"Why do programmers prefer dark mode? Because light attracts bugs.",
	"There are 10 kinds of people: those who understand binary and those who don't.",
	"A SQL query walks into a bar, walks up to two tables and asks: can I join you?",
	"It works on my machine. Then we'll ship your machine.",
	"I would tell you a UDP joke, but you might not get it.",
	"Why did the DevOps engineer go broke? He lost his cache.",
	"Kubernetes: because one container crashing at 3am wasn't enough.",
	"How many programmers does it take to change a light bulb? None, that's a hardware problem.",
	"To understand recursion, you must first understand recursion.",
	"I'd tell you a joke about DNS, but it takes 24 hours to propagate.",
	"Why do Java developers wear glasses? Because they don't C#.",
	"My code doesn't have bugs. It has undocumented features.",
	"The cloud is just someone else's computer having a bad day.",
	"git commit -m 'fixed it' && git commit -m 'actually fixed it'",
	"There's no place like 127.0.0.1.",
	"YAML: the only language where whitespace can take down production.",
	"Terraform plan: 0 to add, 0 to change, 47 to destroy. Looks good to me!",
	"Why was the function sad after a party? It didn't get any callbacks.",
	"A QA engineer orders 1 beer, 0 beers, -1 beers, 99999999 beers and a lizard.",
	"Real engineers test in production. Everyone else uses staging as a suggestion.",
	"Why did the container break up with the VM? It needed more space, but less overhead.",
	"I have a joke about CI/CD, but it's still in the pipeline.",
	"The S in IoT stands for security.",
	"Roses are red, violets are blue, unexpected '}' on line 32.",
	"Deploying on a Friday? Bold. I like it. Goodbye weekend.",
}
