package web

// Section is a heading followed by paragraphs.
type Section struct {
	Heading    string
	Paragraphs []string
}

// FAQ is one question on the home page.
type FAQ struct {
	Question string
	Answer   string
}

// Post is a blog article.
type Post struct {
	Slug        string
	Title       string
	Description string
	Published   string // YYYY-MM-DD
	ReadTime    string
	Sections    []Section
}

var faqs = []FAQ{
	{
		Question: "What is WebMCP?",
		Answer:   "WebMCP (Web Model Context Protocol) is a standard that allows AI agents to interact with websites through structured tools instead of scraping or brittle DOM manipulation. It provides deterministic, schema-based interfaces for agent actions.",
	},
	{
		Question: "What is Agent Experience Optimization (AEO)?",
		Answer:   "AEO is the practice of optimizing your website for AI agent interactions. Similar to how SEO optimizes for search engines, AEO ensures agents can reliably discover, understand, and execute actions on your site.",
	},
	{
		Question: "How is this different from APIs?",
		Answer:   "WebMCP tools are embedded directly in your web pages and discoverable by agents browsing your site. They combine the discoverability of web interfaces with the structure of APIs, enabling agents to interact with your site without prior API integration.",
	},
	{
		Question: "What does your service include?",
		Answer:   "We provide complete WebMCP implementation: tool design and schema creation, integration with your existing stack, declarative and imperative tool patterns, testing and validation, documentation, and ongoing support.",
	},
	{
		Question: "Will this affect my existing users?",
		Answer:   "No. WebMCP tools are progressive enhancements. They are invisible to regular users and only activate when invoked by AI agents. Your existing UI and user experience remain unchanged.",
	},
	{
		Question: "How do agents discover my tools?",
		Answer:   "Agents discover tools by parsing your HTML for WebMCP-compliant elements (declarative tools) or by accessing navigator.modelContext when browsing your site (imperative tools). We also provide llms.txt files to guide agent behavior.",
	},
}

var posts = []Post{
	{
		Slug:        "what-is-webmcp",
		Title:       "What Is WebMCP? A Practical Guide to Making Your Website Agent-Ready",
		Description: "Learn what WebMCP is, how it differs from traditional APIs, and why structured tools matter for AI agent interactions.",
		Published:   "2026-02-16",
		ReadTime:    "8 min read",
		Sections: []Section{
			{
				Heading: "What Is WebMCP?",
				Paragraphs: []string{
					"WebMCP (Model Context Protocol for the web) is a structured way for websites to expose callable tools directly to AI agents.",
					"Instead of forcing agents to scrape HTML, parse DOM structures, or simulate user clicks, WebMCP provides explicit, schema-based interfaces. Agents can discover what actions are possible, understand requirements, and execute reliably.",
					"WebMCP enables websites to become agent-callable without rebuilding as APIs.",
				},
			},
			{
				Heading: "Why WebMCP Exists",
				Paragraphs: []string{
					"AI agents are beginning to browse, compare, and transact on behalf of users. They need structured interfaces to operate reliably.",
					"Traditional web scraping is brittle. CSS selectors break with UI updates. Dynamic content requires complex execution contexts. Schema changes go undetected. Agents fail frequently.",
				},
			},
			{
				Heading: "What Makes a Website Agent-Ready?",
				Paragraphs: []string{
					"An agent-ready site publishes its key actions as named tools with typed inputs, validates those inputs deterministically, and answers with structured results instead of page transitions.",
					"Forms carry declarative metadata: a tool name, a tool description, and a description for every parameter. Scripts register the same actions imperatively for runtimes that support it.",
				},
			},
			{
				Heading: "Is WebMCP the Same as an API?",
				Paragraphs: []string{
					"No. An API needs prior integration. WebMCP tools live on the pages agents already browse, so they are discovered in context and work without credentials or client libraries.",
				},
			},
		},
	},
	{
		Slug:        "agent-experience-optimization",
		Title:       "Agent Experience Optimization (AEO): The Next Layer After SEO",
		Description: "Understand AEO, how it differs from SEO, and why optimizing for machine execution is critical for transactional sites.",
		Published:   "2026-02-16",
		ReadTime:    "10 min read",
		Sections: []Section{
			{
				Heading: "What Is Agent Experience Optimization?",
				Paragraphs: []string{
					"Agent Experience Optimization (AEO) is the practice of designing websites for machine execution rather than visual interpretation.",
					"While SEO optimizes for human-driven search and discovery, AEO optimizes for machine-driven browsing, comparison, and transaction execution.",
					"As AI agents increasingly act on behalf of users, sites that are not AEO-optimized risk being skipped entirely.",
				},
			},
			{
				Heading: "Why AEO Matters for Transactional Sites",
				Paragraphs: []string{
					"Bookings, quotes, purchases, and applications are exactly the actions agents are asked to complete. If an agent cannot execute them reliably, it routes the user somewhere it can.",
				},
			},
			{
				Heading: "How to Implement AEO",
				Paragraphs: []string{
					"Start with the actions that convert. Define a schema for each, expose it as a tool, validate inputs with clear field-level errors, and publish an llms.txt describing what is available.",
				},
			},
		},
	},
}

var privacySections = []Section{
	{Heading: "Information We Collect", Paragraphs: []string{"When you submit our intake form, we collect the information you provide including your name, email address, company details, website URL, and project requirements."}},
	{Heading: "How We Use Information", Paragraphs: []string{"We use the information you provide to evaluate your project requirements, prepare proposals, and communicate with you about our services. We do not sell or share your information with third parties except as necessary to provide our services."}},
	{Heading: "Data Retention", Paragraphs: []string{"Your information is stored securely and retained only as long as necessary to fulfill the purposes outlined in this policy or as required by law."}},
	{Heading: "Your Rights", Paragraphs: []string{"You have the right to access, correct, or delete your personal information. To exercise these rights, please contact us at privacy@webmcpsetup.ai."}},
}

var termsSections = []Section{
	{Heading: "Services", Paragraphs: []string{"We design and implement WebMCP tools and related agent-experience improvements for client websites under a written proposal agreed before work begins."}},
	{Heading: "Engagement Process", Paragraphs: []string{"Submitting the intake form does not create an obligation for either party. Scope, timeline, and pricing are fixed in the proposal that follows the discovery call."}},
	{Heading: "Intellectual Property", Paragraphs: []string{"On full payment, the tool schemas and integration code delivered for your site belong to you. We may reuse general techniques and non-client-specific tooling."}},
	{Heading: "Limitation of Liability", Paragraphs: []string{"Our liability for any engagement is limited to the fees paid for that engagement."}},
}

func findPost(slug string) (Post, bool) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}
