package boilerplate

// Sidebar order of the proposal sections.
var sectionOrder = []string{
	"executiveSummary",
	"introduction",
	"problemStatement",
	"proposedSolution",
	"implementationPlan",
	"budgetAndFinance",
	"evaluationsAndMetric",
	"conclusion",
}

// Section bodies: first line is the heading, remaining lines become
// paragraphs.
var sectionBodies = map[string]string{
	"executiveSummary": `Executive Summary
AugierAI aims to enhance the efficiency of small to mid-sized businesses in accessing government opportunities and generating proposals. This proposal outlines a strategy for leveraging AugierAI's expertise to simplify the process, making it easier for businesses to identify relevant government contracts and create high-quality proposals. Our goal is to streamline the proposal process, improve success rates, and support business growth through effective government engagements.`,

	"introduction": `Introduction
Small to mid-sized businesses often face challenges in navigating the complex landscape of government opportunities. The process of finding relevant contracts and preparing proposals can be time-consuming and cumbersome. AugierAI offers a solution by providing targeted assistance and advanced tools to streamline these processes, ultimately helping businesses secure valuable government contracts and opportunities.`,

	"problemStatement": `Problem Statement
SMBs frequently encounter difficulties in identifying and responding to government opportunities due to the overwhelming volume of available contracts and the intricate nature of proposal requirements.
Evidence indicates that many SMBs miss out on opportunities or submit unsuccessful proposals due to these challenges.
This problem affects SMBs by limiting their potential for growth and profitability in the government contracting arena.`,

	"proposedSolution": `Proposed Solution
AugierAI proposes an integrated solution that combines a government opportunity discovery platform with an advanced proposal generation tool.
The platform will aggregate and categorize relevant government contracts, while the proposal generation tool will assist businesses in drafting and formatting proposals to meet specific requirements.
The benefits include streamlined opportunity identification, improved proposal quality, and increased success rates for SMBs.`,

	"implementationPlan": `Implementation Plan
The implementation plan consists of several key phases:
Development and Testing: Build and refine the opportunity discovery platform and proposal generation tool (3 months).
Pilot Program: Launch a pilot with selected SMBs to gather feedback and make adjustments (2 months).
Full Deployment: Roll out the solution to a wider audience (4 months).
Ongoing Support and Evaluation: Provide ongoing support and evaluate the solution's effectiveness (continuous).`,

	"budgetAndFinance": `Budget and Financial Plan
The budget includes:
Development Costs: $200,000 for software development and testing.
Pilot Program: $50,000 for pilot implementation and feedback collection.
Full Deployment: $150,000 for marketing, training, and support.
Ongoing Support: $75,000 annually.
Funding sources will come from venture capital, government grants, and strategic partnerships.
A cost-benefit analysis demonstrates that the anticipated increase in contract wins for SMBs will offset the initial investment.`,

	"evaluationsAndMetric": `Evaluation and Metrics
Success will be evaluated based on:
The number of opportunities identified and pursued by SMBs.
The quality and success rate of submitted proposals.
User satisfaction and feedback.
Metrics will be measured through platform usage statistics, proposal success rates, and customer surveys.
Progress will be monitored with regular reports and performance reviews.`,

	"conclusion": `Conclusion
In conclusion, AugierAI's proposal offers a comprehensive solution to improve SMB access to government opportunities and enhance proposal success.
The next steps involve finalizing development, initiating the pilot program, and securing funding for full deployment.
This solution aims to empower SMBs with the tools and support needed to succeed in the competitive government contracting landscape.`,
}
