/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: templates.go
Description: HTML templates for the Selector Forge report. Provides a modern,
responsive web interface with URL pattern, selector, and rule compatibility
visualization.
*/

package reporting

// reportTemplate is the main HTML template for the analysis report
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Selector Forge Report</title>
    <link href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.0.0/css/all.min.css" rel="stylesheet">
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            color: #333;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
            padding: 20px;
        }

        .header {
            background: rgba(255, 255, 255, 0.95);
            backdrop-filter: blur(10px);
            border-radius: 20px;
            padding: 30px;
            margin-bottom: 30px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
            text-align: center;
        }

        .header h1 {
            color: #4a5568;
            font-size: 2.5rem;
            margin-bottom: 10px;
            font-weight: 700;
        }

        .header p {
            color: #718096;
            font-size: 1.1rem;
        }

        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }

        .stat-card {
            background: rgba(255, 255, 255, 0.95);
            backdrop-filter: blur(10px);
            border-radius: 15px;
            padding: 25px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
            transition: transform 0.3s ease, box-shadow 0.3s ease;
        }

        .stat-card:hover {
            transform: translateY(-5px);
            box-shadow: 0 12px 40px rgba(0, 0, 0, 0.15);
        }

        .stat-card h3 {
            color: #4a5568;
            font-size: 1.2rem;
            margin-bottom: 15px;
            display: flex;
            align-items: center;
            gap: 10px;
        }

        .stat-card .value {
            font-size: 2.5rem;
            font-weight: 700;
            color: #2d3748;
            margin-bottom: 5px;
        }

        .stat-card .label {
            color: #718096;
            font-size: 0.9rem;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }

        .tabs {
            display: flex;
            background: rgba(255, 255, 255, 0.95);
            backdrop-filter: blur(10px);
            border-radius: 15px;
            padding: 5px;
            margin-bottom: 30px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
        }

        .tab {
            flex: 1;
            padding: 15px 20px;
            text-align: center;
            cursor: pointer;
            border-radius: 10px;
            transition: all 0.3s ease;
            color: #718096;
            font-weight: 500;
        }

        .tab.active {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            box-shadow: 0 4px 15px rgba(102, 126, 234, 0.4);
        }

        .tab:hover:not(.active) {
            background: rgba(102, 126, 234, 0.1);
            color: #667eea;
        }

        .tab-content {
            display: none;
        }

        .tab-content.active {
            display: block;
        }

        .result-list {
            background: rgba(255, 255, 255, 0.95);
            backdrop-filter: blur(10px);
            border-radius: 15px;
            padding: 25px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
            margin-bottom: 30px;
        }

        .result-item {
            background: #f7fafc;
            border-radius: 10px;
            padding: 20px;
            margin-bottom: 15px;
            border-left: 4px solid #667eea;
            transition: all 0.3s ease;
        }

        .result-item:hover {
            transform: translateX(5px);
            box-shadow: 0 4px 15px rgba(0, 0, 0, 0.1);
        }

        .result-item.full { border-left-color: #38a169; }
        .result-item.partial { border-left-color: #d69e2e; }
        .result-item.none { border-left-color: #e53e3e; }

        .result-header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            margin-bottom: 10px;
        }

        .result-title {
            font-weight: 600;
            color: #2d3748;
            font-family: 'Courier New', monospace;
            overflow-wrap: anywhere;
        }

        .badge {
            padding: 4px 12px;
            border-radius: 20px;
            font-size: 0.8rem;
            font-weight: 600;
            text-transform: uppercase;
            white-space: nowrap;
        }

        .badge.full { background: #c6f6d5; color: #38a169; }
        .badge.partial { background: #fef5e7; color: #d69e2e; }
        .badge.none { background: #fed7d7; color: #c53030; }
        .badge.stable { background: #c6f6d5; color: #38a169; }
        .badge.confidence { background: #e9d8fd; color: #6b46c1; }

        .result-details {
            color: #718096;
            font-size: 0.9rem;
        }

        .result-details code {
            background: #edf2f7;
            border-radius: 4px;
            padding: 2px 6px;
            color: #4a5568;
        }

        .warning-line {
            color: #dd6b20;
            font-size: 0.85rem;
            margin-top: 5px;
        }

        .footer {
            text-align: center;
            padding: 30px;
            color: rgba(255, 255, 255, 0.8);
            font-size: 0.9rem;
        }

        @media (max-width: 768px) {
            .container {
                padding: 10px;
            }

            .header h1 {
                font-size: 2rem;
            }

            .stats-grid {
                grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            }
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1><i class="fas fa-crosshairs"></i> {{.Title}}</h1>
            <p>Generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM"}} | Session: {{.SessionID}} | Version: {{.Version}}</p>
        </div>

        <div class="stats-grid">
            <div class="stat-card">
                <h3><i class="fas fa-link"></i> URLs</h3>
                <div class="value">{{.Summary.TotalURLs}}</div>
                <div class="label">URLs Analyzed</div>
            </div>
            <div class="stat-card">
                <h3><i class="fas fa-percentage"></i> Confidence</h3>
                <div class="value">{{pct .Summary.AverageConfidence}}</div>
                <div class="label">Average Pattern Confidence</div>
            </div>
            <div class="stat-card">
                <h3><i class="fas fa-random"></i> Volatile</h3>
                <div class="value">{{.Summary.VolatileSegments}}</div>
                <div class="label">Volatile Segments Found</div>
            </div>
            <div class="stat-card">
                <h3><i class="fas fa-crosshairs"></i> Selectors</h3>
                <div class="value">{{.Summary.StableSelectors}}/{{.Summary.TotalSelectors}}</div>
                <div class="label">Stable Selectors</div>
            </div>
            <div class="stat-card">
                <h3><i class="fas fa-file-export"></i> Rules</h3>
                <div class="value">{{.Summary.FullTierRules}}/{{.Summary.TotalRules}}</div>
                <div class="label">Fully Compatible Rules</div>
            </div>
            <div class="stat-card">
                <h3><i class="fas fa-exclamation-triangle"></i> Warnings</h3>
                <div class="value">{{.Summary.TotalWarnings}}</div>
                <div class="label">Total Warnings</div>
            </div>
        </div>

        <div class="tabs">
            <div class="tab active" onclick="showTab('urls')">
                <i class="fas fa-link"></i> URL Patterns
            </div>
            <div class="tab" onclick="showTab('selectors')">
                <i class="fas fa-crosshairs"></i> Selectors
            </div>
            <div class="tab" onclick="showTab('rules')">
                <i class="fas fa-file-export"></i> Rules
            </div>
        </div>

        <div id="urls" class="tab-content active">
            <div class="result-list">
                <h3><i class="fas fa-link"></i> Generalized URL Patterns</h3>
                {{range .URLAnalyses}}
                <div class="result-item">
                    <div class="result-header">
                        <div class="result-title">{{.Pattern.PatternString}}</div>
                        <div class="badge confidence">{{pct .Pattern.Confidence}}</div>
                    </div>
                    <div class="result-details">
                        <p><strong>Source:</strong> <code>{{.Pattern.SourceURL}}</code></p>
                        <p><strong>Strategy:</strong> {{.Pattern.MatchStrategy}} | <strong>Environment:</strong> {{.Environment}} | <strong>Hash-routed:</strong> {{if .Structure.IsHashRouted}}Yes{{else}}No{{end}}</p>
                        <p><strong>Analyzed:</strong> {{.AnalyzedAt.Format "2006-01-02 15:04:05"}}</p>
                        {{range .Warnings}}
                        <p class="warning-line"><i class="fas fa-exclamation-triangle"></i> {{.Code}}: {{.Message}}</p>
                        {{end}}
                    </div>
                </div>
                {{end}}
            </div>
        </div>

        <div id="selectors" class="tab-content">
            <div class="result-list">
                <h3><i class="fas fa-crosshairs"></i> Generated Selectors</h3>
                {{range .SelectorResults}}
                <div class="result-item">
                    <div class="result-header">
                        <div class="result-title">{{.Best.SelectorString}}</div>
                        {{if .Best.IsStable}}<div class="badge stable">Stable</div>{{end}}
                    </div>
                    <div class="result-details">
                        <p><strong>Specificity:</strong> {{.Best.Specificity}} | <strong>Shadow-aware:</strong> {{if .Best.ShadowAware}}Yes{{else}}No{{end}} | <strong>Alternatives:</strong> {{len .Candidates}}</p>
                        {{range .Best.Warnings}}
                        <p class="warning-line"><i class="fas fa-exclamation-triangle"></i> {{.}}</p>
                        {{end}}
                    </div>
                </div>
                {{end}}
            </div>
        </div>

        <div id="rules" class="tab-content">
            <div class="result-list">
                <h3><i class="fas fa-file-export"></i> Exported Rules</h3>
                {{range .Rules}}
                <div class="result-item {{.Tier}}">
                    <div class="result-header">
                        <div class="result-title">{{.Body}}</div>
                        <div class="badge {{.Tier}}">{{.Tier}}</div>
                    </div>
                    <div class="result-details">
                        <p><strong>Kind:</strong> {{.Kind}}</p>
                        <p>{{.Explanation}}</p>
                        {{range .Warnings}}
                        <p class="warning-line"><i class="fas fa-exclamation-triangle"></i> {{.}}</p>
                        {{end}}
                    </div>
                </div>
                {{end}}
            </div>
        </div>
    </div>

    <div class="footer">
        <p>&copy; 2026 Selector Forge - URL &amp; Selector Generalization Engine</p>
    </div>

    <script>
        // Tab functionality
        function showTab(tabName) {
            // Hide all tab contents
            const tabContents = document.querySelectorAll('.tab-content');
            tabContents.forEach(content => content.classList.remove('active'));

            // Remove active class from all tabs
            const tabs = document.querySelectorAll('.tab');
            tabs.forEach(tab => tab.classList.remove('active'));

            // Show selected tab content
            document.getElementById(tabName).classList.add('active');

            // Add active class to clicked tab
            event.target.classList.add('active');
        }
    </script>
</body>
</html>`
