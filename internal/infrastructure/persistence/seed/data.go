package seed

import (
	"time"

	"github.com/hilthontt/powersite/internal/domain"
)

func projectStats(time.Time) []any {
	stat := func(label string, value int, suffix, icon string, order int) any {
		s := domain.NewProjectStat()
		s.Label, s.Value, s.Suffix, s.Icon, s.Order = label, value, suffix, icon, order
		return s
	}
	return []any{
		stat("Installed Capacity", 1320, " MW", "⚡", 1),
		stat("Investment", 15000, " Cr", "💰", 2),
		stat("Workforce", 5000, "+", "👥", 3),
		stat("Safety Hours", 10, "M+", "🛡️", 4),
	}
}

func boardMembers(time.Time) []any {
	member := func(name, title, bio, image string, chairman bool, order int) any {
		m := domain.NewBoardMember()
		m.Name, m.Title, m.Bio, m.ImageURL, m.IsChairman, m.Order = name, title, bio, ptr(image), chairman, order
		return m
	}
	return []any{
		member("Shri Raj Kumar Singh", "Chairman, BIFPCL",
			"Leading the board with a vision for sustainable energy cooperation between Bangladesh and India.",
			"/images/director-1.png", true, 1),
		member("Mr. Mohammed Hossain", "Managing Director, BIFPCL",
			"Over 30 years experience in power sector management and international energy cooperation.",
			"/images/director-2.png", false, 2),
		member("Mr. Nasrul Hamid Bipu, MP", "Director (Bangladesh)",
			"State Minister for Power, Energy and Mineral Resources, Government of Bangladesh.",
			"/images/director-3.png", false, 3),
		member("Mr. S.K. Roy", "Director (India)",
			"Director from NTPC Limited, bringing decades of thermal power expertise.",
			"/images/director-4.png", false, 4),
		member("Mr. K.M. Rahman", "Director (Bangladesh)",
			"Senior representative from Bangladesh Power Development Board. Expert in grid management.",
			"/images/director-5.png", false, 5),
		member("Mr. A.K. Sharma", "Director (India)",
			"Senior representative from NTPC Limited with expertise in plant operations and maintenance.",
			"/images/director-6.png", false, 6),
	}
}

func projects(time.Time) []any {
	project := func(name, location, description, capacity, category, image, efficiency string, featured bool) any {
		p := domain.NewProject()
		p.Name, p.Location, p.Description, p.Capacity = name, location, description, capacity
		p.Category, p.ImageURL, p.Efficiency, p.IsFeatured = category, ptr(image), efficiency, featured
		return p
	}
	return []any{
		project("Maitree Super Thermal Power Project", "Rampal, Bagerhat, Bangladesh",
			"Ultra-supercritical coal-fired thermal power plant, a symbol of Bangladesh-India friendship and cooperation.",
			"1320 MW", "coal", "/images/hero-1.png", ">41%", true),
		project("Unit-1 (660 MW)", "Rampal, Bagerhat",
			"First generating unit of Maitree STPP, synchronized with national grid in August 2022.",
			"660 MW", "coal", "/images/hero-2.png", ">41%", false),
		project("Unit-2 (660 MW)", "Rampal, Bagerhat",
			"Second generating unit with ultra-supercritical technology. Commercial operation achieved in December 2023.",
			"660 MW", "coal", "/images/hero-3.png", ">41%", false),
		project("Green Belt Development", "Rampal, Bagerhat",
			"Afforestation initiative with over 542,000 trees planted around the project area.",
			"542K Trees", "solar", "/images/sustainability-hero.png", "N/A", false),
	}
}

func milestones(time.Time) []any {
	milestone := func(year, title, description string, order int) any {
		m := domain.NewMilestone()
		m.Year, m.Title, m.Description, m.Order = year, title, description, order
		return m
	}
	return []any{
		milestone("2010", "Framework Agreement", "Framework agreement signed between Bangladesh and India for power cooperation.", 1),
		milestone("2012", "BIFPCL Established", "Joint venture incorporated as a 50:50 partnership between BPDB and NTPC.", 2),
		milestone("2013", "CCEA Approval", "Cabinet Committee on Economic Affairs approved the Maitree STPP project.", 3),
		milestone("2016", "Construction Begins", "Ground-breaking ceremony held and main plant construction initiated.", 4),
		milestone("2017", "Financial Closure", "Loan agreement signed with EXIM Bank of India for project financing.", 5),
		milestone("2022", "Unit-1 Synchronized", "First 660 MW unit synchronized with the national grid in August 2022.", 6),
		milestone("2023", "Full Commercial Operation", "Both units operational, delivering 1320 MW to Bangladesh.", 7),
	}
}

func sustainabilityStats(time.Time) []any {
	stat := func(label, value, trend, icon string, order int) any {
		s := domain.NewSustainabilityStat()
		s.Label, s.Value, s.Trend, s.Icon, s.Order = label, value, ptr(trend), ptr(icon), order
		return s
	}
	return []any{
		stat("Trees Planted", "542,000+", "+15.4% YoY", "🌳", 1),
		stat("Water Recycled", "88%", "Zero Liquid Discharge", "💧", 2),
		stat("Carbon Reduction", "22%", "Ultra-supercritical Tech", "🌍", 3),
		stat("CSR Investment", "৳15 Cr+", "Annual Budget", "🤝", 4),
		stat("Fly Ash Utilization", "100%", "Sustainable Bricks", "♻️", 5),
		stat("Safety Record", "10M+ Hours", "Zero LTI", "🛡️", 6),
	}
}

func csrInitiatives(time.Time) []any {
	initiative := func(title, description, category, impact, image string) any {
		c := domain.NewCSRInitiative()
		c.Title, c.Description, c.Category, c.ImpactMetric, c.ImageURL = title, description, category, ptr(impact), ptr(image)
		return c
	}
	return []any{
		initiative("Education Support Program",
			"Annual scholarships for local students, school infrastructure upgrades and teacher training.",
			"education", "5000+ students benefited", "/images/csr-education.png"),
		initiative("Mobile Health Clinics",
			"Free primary healthcare services to 12 villages weekly via dedicated mobile medical units.",
			"health", "50,000+ patients treated annually", "/images/csr-health.png"),
		initiative("Green Belt Initiative",
			"Afforestation program creating a green buffer zone around the project area.",
			"environment", "542,000+ trees planted", "/images/sustainability-hero.png"),
		initiative("Skill Development Training",
			"Vocational training for local youth in electrical, welding and other technical skills.",
			"livelihood", "1000+ trained annually", "/images/hero-2.png"),
		initiative("Clean Drinking Water",
			"Deep tube wells and water purification systems in nearby villages.",
			"health", "15 villages covered", "/images/hero-3.png"),
	}
}

func tenders(now time.Time) []any {
	tender := func(title, description, reference string, days int, category string) any {
		t := domain.NewTender()
		t.Title, t.Description, t.ReferenceNumber, t.Category = title, description, reference, category
		t.Deadline = now.AddDate(0, 0, days)
		return t
	}
	return []any{
		tender("Supply of Imported Coal for Power Generation",
			"Procurement of high-grade thermal coal for Unit 1 & 2. Annual requirement: 4.5 million tonnes.",
			"BIFPCL/TENDER/2026/001", 30, domain.TenderCategoryGoods),
		tender("Annual Maintenance Contract for Steam Turbines",
			"Comprehensive maintenance services for 2x660 MW steam turbine generators. 3-year contract.",
			"BIFPCL/TENDER/2026/002", 45, domain.TenderCategoryServices),
		tender("Construction of Ash Pond Extension Phase-II",
			"Civil works for expansion of the existing ash pond facility including HDPE lining and drainage.",
			"BIFPCL/TENDER/2026/003", 60, domain.TenderCategoryWorks),
		tender("Environmental Impact Assessment Study 2026-2030",
			"Consultancy services for a 5-year EIA study and environmental monitoring program.",
			"BIFPCL/TENDER/2026/004", 20, domain.TenderCategoryConsultancy),
		tender("Procurement of Personal Protective Equipment",
			"Supply of helmets, fire-resistant clothing, safety shoes and respiratory protection.",
			"BIFPCL/TENDER/2026/005", 15, domain.TenderCategoryGoods),
	}
}

func news(time.Time) []any {
	article := func(title, content, summary, image string, featured bool) any {
		n := domain.NewNews()
		n.Title, n.Content, n.Summary, n.ImageURL, n.IsFeatured = title, content, summary, ptr(image), featured
		return n
	}
	return []any{
		article("BIFPCL Achieves 100% Commercial Operation",
			"Both 660 MW units are now operating at full commercial capacity, delivering 1320 MW of base-load power to the national grid.",
			"Both 660 MW units are now fully operational, marking a historic milestone for the joint venture.",
			"/images/news-1.png", true),
		article("Prime Minister Visits Rampal Power Plant",
			"The Prime Minister toured the main plant area, control room and environmental management facilities.",
			"PM lauds progress and environmental measures at the power plant during official visit.",
			"/images/news-2.png", true),
		article("New Continuous Emission Monitoring System Installed",
			"Real-time emission data is transmitted to the Department of Environment for regulatory compliance.",
			"Advanced CEMS ensures environmental compliance and transparency in emissions monitoring.",
			"/images/hero-1.png", false),
		article("Community Development Program Expands to 20 Villages",
			"The program includes scholarships, mobile healthcare, vocational training and clean water access.",
			"CSR program now covers 20 villages with education, healthcare, and livelihood support.",
			"/images/csr-education.png", false),
		article("Safety Excellence Award 2025",
			"BIFPCL received the National Safety Excellence Award for 18 months without lost-time incidents.",
			"Recognition for outstanding safety record with 10M+ safe man-hours.",
			"/images/hero-2.png", false),
	}
}

func careers(now time.Time) []any {
	career := func(title, department, location, description, requirements, jobType string, days, vacancies int) any {
		c := domain.NewCareer()
		c.Title, c.Department, c.Location, c.Description, c.Requirements = title, department, location, description, requirements
		deadline := now.AddDate(0, 0, days)
		c.JobType, c.Deadline, c.Vacancies = jobType, domain.NewDate(deadline.Year(), deadline.Month(), deadline.Day()), vacancies
		return c
	}
	return []any{
		career("Senior Power Plant Engineer", "Operations", domain.DefaultCareerLocation,
			"Lead the operations team for a 660 MW supercritical thermal power unit.",
			"B.Sc in Mechanical/Electrical Engineering; 10+ years in thermal power plants.",
			domain.JobTypeFullTime, 30, 2),
		career("Environmental Officer", "Environment & Safety", domain.DefaultCareerLocation,
			"Monitor and ensure compliance with environmental regulations.",
			"M.Sc in Environmental Science; 5+ years in industrial environmental management.",
			domain.JobTypeFullTime, 25, 1),
		career("Electrical Maintenance Technician", "Maintenance", domain.DefaultCareerLocation,
			"Preventive and corrective maintenance on transformers, switchgear and motors.",
			"Diploma in Electrical Engineering; 3+ years in power plant maintenance.",
			domain.JobTypeFullTime, 20, 5),
		career("Finance Manager", "Finance", "Dhaka Office",
			"Manage budgeting, reporting and compliance with shareholders and lenders.",
			"CA/CMA or MBA in Finance; 8+ years in corporate finance.",
			domain.JobTypeFullTime, 45, 1),
		career("HR Intern", "Human Resources", "Dhaka Office",
			"Support recruitment, onboarding and employee engagement programs.",
			"Final-year student or recent graduate in HR or Business Administration.",
			domain.JobTypeInternship, 15, 2),
	}
}
