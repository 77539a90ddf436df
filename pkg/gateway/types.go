package gateway

// Response payloads for the analytics service. The service precomputes all
// scoring; these structures are consumed verbatim by display views.

// Node is one participant in the communication graph.
type Node struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	TotalSent           int     `json:"total_sent"`
	TotalReceived       int     `json:"total_received"`
	Department          string  `json:"department,omitempty"`
	CommunityID         *int    `json:"community_id,omitempty"`
	PageRank            float64 `json:"pagerank"`
	Betweenness         float64 `json:"betweenness"`
	Eigenvector         float64 `json:"eigenvector"`
	DegreeCentrality    float64 `json:"degree_centrality"`
	InDegreeCentrality  float64 `json:"in_degree_centrality"`
	OutDegreeCentrality float64 `json:"out_degree_centrality"`
	AvgSentSentiment    float64 `json:"avg_sent_sentiment"`
	AvgRecvSentiment    float64 `json:"avg_received_sentiment"`
}

// Edge is a directed, weighted relationship between two nodes.
type Edge struct {
	Source             string  `json:"source"`
	Target             string  `json:"target"`
	EmailCount         int     `json:"email_count"`
	Weight             float64 `json:"weight"`
	Sentiment          float64 `json:"sentiment"`
	SentimentAsymmetry float64 `json:"sentiment_asymmetry"`
	FirstEmail         string  `json:"first_email,omitempty"`
	LastEmail          string  `json:"last_email,omitempty"`
	NormFrequency      float64 `json:"norm_frequency"`
	NormRecency        float64 `json:"norm_recency"`
}

// GraphPayload is the bulk graph response.
type GraphPayload struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// PersonSummary is the list-view row for one person.
type PersonSummary struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	CommunityID      *int    `json:"community_id,omitempty"`
	PageRank         float64 `json:"pagerank"`
	Betweenness      float64 `json:"betweenness"`
	Eigenvector      float64 `json:"eigenvector"`
	TotalSent        int     `json:"total_sent"`
	TotalReceived    int     `json:"total_received"`
	AvgSentSentiment float64 `json:"avg_sent_sentiment"`
	DMSScore         float64 `json:"dms_score"`
	WasteScore       float64 `json:"waste_score"`
}

// PeoplePayload is the person summary list response.
type PeoplePayload struct {
	People []PersonSummary `json:"people"`
}

// Workstream is one slice of a person's inferred workstream breakdown.
type Workstream struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// PeerComparison is one comparable peer in the detail panel.
type PeerComparison struct {
	Name            string  `json:"name"`
	Betweenness     float64 `json:"betweenness"`
	PageRank        float64 `json:"pagerank"`
	TotalSent       int     `json:"total_sent"`
	TotalReceived   int     `json:"total_received"`
	SimilarityScore float64 `json:"similarity_score"`
}

// PersonPanel is the expanded, on-demand record for one selected person.
// It is never cached across selections.
type PersonPanel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CommunityID *int   `json:"community_id,omitempty"`
	AlertTier   string `json:"alert_tier"`
	Since       string `json:"since,omitempty"`

	RoleSnapshot string       `json:"role_snapshot"`
	Workstreams  []Workstream `json:"workstreams"`

	EmailsPerDay       float64 `json:"emails_per_day"`
	InPct              float64 `json:"in_pct"`
	OutPct             float64 `json:"out_pct"`
	MedianResponseHrs  float64 `json:"median_response_time_hrs"`
	AfterHoursActivity string  `json:"after_hours_activity"`
	InDegreeNorm       float64 `json:"in_degree_norm"`
	OutDegreeNorm      float64 `json:"out_degree_norm"`
	ResponseLatency    string  `json:"response_latency"`
	VolumeDeltaPct     float64 `json:"volume_delta_pct"`
	NewTopic           string  `json:"new_topic,omitempty"`
	DiversityDeltaPct  float64 `json:"diversity_delta_pct"`

	PeerRank        int              `json:"peer_rank"`
	PeerTotal       int              `json:"peer_total"`
	LikelyBackups   []string         `json:"likely_backups"`
	ComparablePeers []PeerComparison `json:"comparable_peers"`
}

// HealthSubScores are the components of the composite health score.
type HealthSubScores struct {
	Connectivity   float64 `json:"connectivity"`
	BottleneckRisk float64 `json:"bottleneck_risk"`
	SiloScore      float64 `json:"silo_score"`
	Efficiency     float64 `json:"efficiency"`
}

// GraphStats are the aggregate graph statistics.
type GraphStats struct {
	NodeCount             int     `json:"node_count"`
	EdgeCount             int     `json:"edge_count"`
	Density               float64 `json:"density"`
	AvgPathLength         float64 `json:"avg_path_length"`
	ClusteringCoefficient float64 `json:"clustering_coefficient"`
	CommunitiesCount      int     `json:"communities_count"`
	Modularity            float64 `json:"modularity"`
	GCCRatio              float64 `json:"gcc_ratio"`
}

// HealthPayload is the composite health response.
type HealthPayload struct {
	HealthScore float64         `json:"health_score"`
	Grade       string          `json:"grade"`
	SubScores   HealthSubScores `json:"sub_scores"`
	Stats       GraphStats      `json:"stats"`
}

// OverviewPayload is the metrics overview response.
type OverviewPayload struct {
	Health    HealthPayload      `json:"health"`
	Sentiment map[string]float64 `json:"sentiment"`
}

// CentralityEntry is one row of a centrality ranking.
type CentralityEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// CentralityPayload is a ranked centrality listing for one centrality type.
type CentralityPayload struct {
	Type     string            `json:"type"`
	Rankings []CentralityEntry `json:"rankings"`
}

// Community is one detected community.
type Community struct {
	ID      int      `json:"id"`
	Members []string `json:"members"`
	Size    int      `json:"size"`
	Density float64  `json:"density"`
}

// CommunitiesPayload is the community detection response.
type CommunitiesPayload struct {
	Communities []Community `json:"communities"`
	BridgeNodes []string    `json:"bridge_nodes"`
	Modularity  float64     `json:"modularity"`
}

// CriticalityEntry is one row of the single-point-of-failure ranking.
type CriticalityEntry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DMSScore    float64 `json:"dms_score"`
	Betweenness float64 `json:"betweenness"`
	Eigenvector float64 `json:"eigenvector"`
	Redundancy  float64 `json:"redundancy"`
	ImpactPct   float64 `json:"impact_pct"`
}

// CriticalityPayload is the criticality rankings response.
type CriticalityPayload struct {
	Rankings []CriticalityEntry `json:"rankings"`
}

// WasteEntry is one row of the communication-waste ranking.
type WasteEntry struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	WasteScore     float64 `json:"waste_score"`
	Overproduction float64 `json:"overproduction"`
	BroadcastRatio float64 `json:"broadcast_ratio"`
	ReplyAllRatio  float64 `json:"reply_all_ratio"`
	OrphanRatio    float64 `json:"orphan_ratio"`
}

// WastePayload is the waste rankings response.
type WastePayload struct {
	People []WasteEntry `json:"people"`
}

// HighRiskNode is one entry in the risk summary.
type HighRiskNode struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	RiskScore        float64 `json:"risk_score"`
	RiskLabel        string  `json:"risk_label"`
	KeyVulnerability string  `json:"key_vulnerability"`
	ImpactPct        float64 `json:"impact_pct"`
}

// StructuralRisk is one organization-level structural risk.
type StructuralRisk struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// WasteOffender is one top waste source in the risk summary.
type WasteOffender struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	WasteScore float64 `json:"waste_score"`
	MainDriver string  `json:"main_driver"`
}

// RisksPayload is the risk summaries response.
type RisksPayload struct {
	HighRiskNodes   []HighRiskNode   `json:"high_risk_nodes"`
	StructuralRisks []StructuralRisk `json:"structural_risks"`
	WasteOffenders  []WasteOffender  `json:"waste_offenders"`
}

// TrendItem is one trend delta row.
type TrendItem struct {
	PersonID   string  `json:"person_id"`
	PersonName string  `json:"person_name"`
	Metric     string  `json:"metric"`
	Value      float64 `json:"value"`
	DeltaPct   float64 `json:"delta_pct"`
}

// TrendsPayload is the trend deltas response.
type TrendsPayload struct {
	Structural    []TrendItem `json:"structural"`
	Communication []TrendItem `json:"communication"`
	Emerging      []TrendItem `json:"emerging"`
}

// ReportSection is one section of the generated health report.
type ReportSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReportPayload is the health report response.
type ReportPayload struct {
	Report []ReportSection `json:"report"`
}

// ChatMessage is one turn of history sent with a chat request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the conversational turn request body.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
}
