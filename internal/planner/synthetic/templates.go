// internal/planner/synthetic/templates.go
package synthetic

import (
	"strings"

	"planflow/internal/models"
)

type template struct {
	category      string
	keywords      []string
	projectName   string
	summaryFormat string // one %d verb: total days
	milestones    []string
	stack         []models.TechnologyStackItem
	resources     []string
	taskNames     []string
	owners        []string
}

func pickTemplate(text string) template {
	for _, tpl := range templates {
		for _, kw := range tpl.keywords {
			if strings.Contains(text, kw) {
				return tpl
			}
		}
	}
	return genericTemplate
}

var templates = []template{
	{
		category:      "mobile",
		keywords:      []string{"mobile", "ios", "android", "app store"},
		projectName:   "Mobile App Delivery Plan",
		summaryFormat: "A mobile application project delivering a cross-platform app over %d days, covering design, parallel client and API development, testing, and a store-ready launch.",
		milestones: []string{
			"UX Design & Prototype Approved",
			"Core App Features Complete",
			"Beta Release to Testers",
			"App Store Launch",
		},
		stack: []models.TechnologyStackItem{
			{Component: "Mobile Client", Technology: "React Native", Rationale: "Single codebase for iOS and Android with native performance"},
			{Component: "Backend API", Technology: "Go", Rationale: "Fast, statically typed services with simple deployment"},
			{Component: "Database", Technology: "PostgreSQL", Rationale: "Reliable relational storage with strong data integrity"},
			{Component: "Push Notifications", Technology: "Firebase Cloud Messaging", Rationale: "Managed cross-platform push delivery"},
		},
		resources: []string{
			"1x Product Manager",
			"1x UI/UX Designer",
			"2x Mobile Developers",
			"1x Backend Developer",
			"1x QA Engineer",
		},
		taskNames: []string{
			"Requirements & Planning",
			"UX Design & Prototyping",
			"Mobile Client Development",
			"Backend API Development",
			"Integration & Beta Testing",
			"Store Submission & Launch",
		},
		owners: []string{"Product Manager", "UI/UX Designer", "Mobile Developer", "Backend Developer", "QA Engineer", "Product Manager"},
	},
	{
		category:      "website",
		keywords:      []string{"website", "web site", "portfolio", "landing page", "blog", "e-commerce", "ecommerce", "web app"},
		projectName:   "Website Build Plan",
		summaryFormat: "A website project delivered over %d days, from content and visual design through parallel frontend and backend builds to a production launch.",
		milestones: []string{
			"Sitemap & Design Approved",
			"Frontend V1 Deployed to Staging",
			"Content & SEO Review Complete",
			"Production Launch",
		},
		stack: []models.TechnologyStackItem{
			{Component: "Frontend", Technology: "React", Rationale: "Component-based UI with a rich ecosystem"},
			{Component: "Backend", Technology: "Node.js", Rationale: "Shared language across the stack speeds iteration"},
			{Component: "Database", Technology: "PostgreSQL", Rationale: "Robust relational database with excellent data integrity"},
			{Component: "Hosting", Technology: "Vercel", Rationale: "Zero-ops deployment with preview environments"},
		},
		resources: []string{
			"1x Project Manager",
			"1x UI/UX Designer",
			"1x Frontend Developer",
			"1x Backend Developer",
		},
		taskNames: []string{
			"Project Planning & Requirements",
			"UI/UX Design",
			"Frontend Development",
			"Backend Development",
			"Integration & Testing",
			"Deployment & Launch",
		},
		owners: []string{"Project Manager", "UI/UX Designer", "Frontend Developer", "Backend Developer", "QA Engineer", "DevOps"},
	},
	{
		category:      "marketing",
		keywords:      []string{"marketing", "campaign", "brand", "advertis", "social media"},
		projectName:   "Marketing Campaign Plan",
		summaryFormat: "A marketing campaign executed over %d days, from audience research and creative production through parallel channel setup to launch and reporting.",
		milestones: []string{
			"Audience & Messaging Defined",
			"Creative Assets Approved",
			"Campaign Live Across Channels",
			"Performance Report Delivered",
		},
		stack: []models.TechnologyStackItem{
			{Component: "Analytics", Technology: "Google Analytics 4", Rationale: "Unified funnel and conversion tracking"},
			{Component: "Email Automation", Technology: "Mailchimp", Rationale: "Managed campaigns with segmentation built in"},
			{Component: "Ad Platforms", Technology: "Meta Ads + Google Ads", Rationale: "Coverage of the two largest paid channels"},
		},
		resources: []string{
			"1x Campaign Manager",
			"1x Content Strategist",
			"1x Graphic Designer",
			"1x Performance Marketer",
		},
		taskNames: []string{
			"Audience Research & Strategy",
			"Creative Concept & Assets",
			"Paid Channel Setup",
			"Organic & Email Setup",
			"Campaign Launch & Optimization",
			"Reporting & Retrospective",
		},
		owners: []string{"Campaign Manager", "Graphic Designer", "Performance Marketer", "Content Strategist", "Campaign Manager", "Campaign Manager"},
	},
	{
		category:      "data",
		keywords:      []string{"data platform", "analytics", "dashboard", "pipeline", "machine learning", "etl", "warehouse"},
		projectName:   "Data Platform Plan",
		summaryFormat: "A data platform project delivered over %d days, covering source modeling, parallel ingestion and transformation builds, validation, and a dashboard rollout.",
		milestones: []string{
			"Data Model & Sources Mapped",
			"Ingestion Pipelines Running",
			"Transformations Validated",
			"Dashboards Live",
		},
		stack: []models.TechnologyStackItem{
			{Component: "Warehouse", Technology: "BigQuery", Rationale: "Serverless scaling for analytical workloads"},
			{Component: "Orchestration", Technology: "Airflow", Rationale: "Battle-tested scheduling with dependency management"},
			{Component: "Transformation", Technology: "dbt", Rationale: "Versioned, testable SQL transformations"},
			{Component: "Visualization", Technology: "Looker Studio", Rationale: "Fast dashboarding on top of the warehouse"},
		},
		resources: []string{
			"1x Data Engineer",
			"1x Analytics Engineer",
			"1x Data Analyst",
		},
		taskNames: []string{
			"Source Audit & Data Modeling",
			"Warehouse & Schema Setup",
			"Ingestion Pipeline Development",
			"Transformation Development",
			"Data Quality Validation",
			"Dashboard Build & Rollout",
		},
		owners: []string{"Data Engineer", "Data Engineer", "Data Engineer", "Analytics Engineer", "Analytics Engineer", "Data Analyst"},
	},
}

var genericTemplate = template{
	category:      "generic",
	keywords:      nil,
	projectName:   "Project Delivery Plan",
	summaryFormat: "A project delivered over %d days with design, parallel development tracks, testing, and deployment phases, each with clear milestones and deliverables.",
	milestones: []string{
		"Requirements & Design Complete",
		"Development Phase 1 Complete",
		"Testing & QA Complete",
		"Production Deployment",
	},
	stack: []models.TechnologyStackItem{
		{Component: "Frontend", Technology: "React", Rationale: "Component-based architecture for maintainable UI"},
		{Component: "Backend", Technology: "Go", Rationale: "High performance services with straightforward concurrency"},
		{Component: "Database", Technology: "PostgreSQL", Rationale: "Robust relational database with excellent data integrity"},
		{Component: "Deployment", Technology: "Docker", Rationale: "Consistent deployment across environments"},
	},
	resources: []string{
		"1x Project Manager",
		"1x UI/UX Designer",
		"2x Full-Stack Developers",
		"1x QA Engineer",
	},
	taskNames: []string{
		"Project Planning & Requirements",
		"UI/UX Design",
		"Frontend Development",
		"Backend Development",
		"Integration & Testing",
		"Deployment & Launch",
	},
	owners: []string{"Project Manager", "UI/UX Designer", "Frontend Developer", "Backend Developer", "QA Engineer", "DevOps"},
}
