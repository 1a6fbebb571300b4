package rules

// catalogData is the static rule table (C4). It is data: every decision
// procedure lives in rules/line or rules/file, keyed by Code. Numbering
// follows the source series for each severity prefix; gaps in the sequence
// (e.g. no E005, no E010-E015) are intentional and are not filled in or
// renumbered, matching upstream rule-code stability.
var catalogData = []Rule{
	// --- Error (E) ---------------------------------------------------------
	{Code: "E001", Severity: SeverityError, Name: "Unbalanced parentheses",
		Explanation:    "A parenthesized block never closes, or a `)` appears with no matching `(` before it.",
		Recommendation: "Count opening and closing parentheses in the block; add or remove one to balance it."},
	{Code: "E002", Severity: SeverityError, Name: "Undefined label target",
		Explanation:    "A GOTO or CALL :label references a label that is never defined in this file.",
		Recommendation: "Define the label, or correct the spelling of the target."},
	{Code: "E003", Severity: SeverityError, Name: "IF keyword not separated by whitespace",
		Explanation:    "IF is immediately followed by a condition token with no space, which cmd.exe may misparse.",
		Recommendation: "Insert a space between IF and the condition."},
	{Code: "E004", Severity: SeverityError, Name: "Mixed IF EXIST and comparison operator",
		Explanation:    "IF EXIST is combined with == on the same condition, which is not valid IF EXIST syntax.",
		Recommendation: "Split into a separate IF EXIST test and a separate comparison."},
	{Code: "E006", Severity: SeverityError, Name: "Undefined variable reference",
		Explanation:    "A %NAME% or !NAME! reference has no earlier definition, parameter, FOR variable, or well-known environment name.",
		Recommendation: "Define the variable before use, or confirm the name is spelled correctly."},
	{Code: "E007", Severity: SeverityError, Name: "Unquoted empty-string comparison",
		Explanation:    "IF %VAR%==\"\" compares an expanded value against a literal empty string without quoting the left side, which breaks when VAR is undefined.",
		Recommendation: "Quote both sides: IF \"%VAR%\"==\"\"."},
	{Code: "E008", Severity: SeverityError, Name: "Unreachable code",
		Explanation:    "This line cannot be reached because the preceding line unconditionally EXITs or GOTOs away, outside any parenthesized block.",
		Recommendation: "Remove the dead code, or add a label/branch that can reach it."},
	{Code: "E009", Severity: SeverityError, Name: "Unmatched quote",
		Explanation:    "The line has an odd number of unescaped double quotes.",
		Recommendation: "Add or remove a quote so quotes pair up."},
	{Code: "E016", Severity: SeverityError, Name: "ERRORLEVEL comparison missing operator",
		Explanation:    "IF [NOT] %ERRORLEVEL% <digits> omits a comparison operator (EQU, GEQ, ...), which is shorthand cmd.exe interprets differently than most authors expect.",
		Recommendation: "Use IF %ERRORLEVEL% GEQ <digits> or an explicit comparison operator."},
	{Code: "E017", Severity: SeverityError, Name: "Unknown percent-tilde modifier",
		Explanation:    "A %~ reference uses a modifier letter outside the recognized set {f,d,p,n,x,s,a,t,z}.",
		Recommendation: "Remove or correct the modifier letter."},
	{Code: "E019", Severity: SeverityError, Name: "Percent-tilde applied to invalid target",
		Explanation:    "A %~ modifier is applied to something that is not a numbered parameter or a FOR loop variable.",
		Recommendation: "Apply %~ modifiers only to %0-%9 or a FOR variable."},
	{Code: "E020", Severity: SeverityError, Name: "Wrong FOR-variable percent form",
		Explanation:    "A FOR statement in a batch file uses a single-percent loop variable (%I) instead of the required doubled form (%%I).",
		Recommendation: "Double the percent sign: %%I."},
	{Code: "E021", Severity: SeverityError, Name: "Unbalanced parentheses in SET /A expression",
		Explanation:    "The arithmetic expression after SET /A has unbalanced parentheses.",
		Recommendation: "Balance the parentheses in the expression."},
	{Code: "E022", Severity: SeverityError, Name: "Invalid SET /A expression",
		Explanation:    "The SET /A expression contains a token that is not a recognized operator, identifier, or literal.",
		Recommendation: "Rewrite the expression using only supported operators and literals."},
	{Code: "E023", Severity: SeverityError, Name: "Restricted operator outside quotes in SET /A",
		Explanation:    "The expression uses ^, &, |, <<, or >> outside quotes, where cmd.exe's own parser intercepts them before SET /A sees them.",
		Recommendation: "Quote the whole expression, or escape the operator with a caret."},
	{Code: "E024", Severity: SeverityError, Name: "Conflicting percent-tilde modifiers",
		Explanation:    "The modifiers `a` and `z` were combined, or `$PATH:` was combined with a non-numbered target such as a FOR variable.",
		Recommendation: "Remove one of the conflicting modifiers."},
	{Code: "E029", Severity: SeverityError, Name: "Overly complex SET /A expression",
		Explanation:    "The expression has more than one top-level assignment or nests more than four parentheses deep.",
		Recommendation: "Split the expression into multiple SET /A statements."},
	{Code: "E030", Severity: SeverityError, Name: "Dangling caret escape",
		Explanation:    "A caret at end of line is meant to continue the command onto the next line, but the next line is blank or a comment.",
		Recommendation: "Remove the trailing caret, or continue the command on the following line."},
	{Code: "E031", Severity: SeverityError, Name: "Caret escape inside quotes",
		Explanation:    "A caret inside a quoted string has no escaping effect and is passed through literally, which is usually not the intent.",
		Recommendation: "Move the caret outside the quotes, or remove it."},
	{Code: "E032", Severity: SeverityError, Name: "Line continuation breaks a quoted string",
		Explanation:    "A caret line-continuation splits a command in the middle of an open quote.",
		Recommendation: "Keep the quoted string on one line, or close the quote before continuing."},
	{Code: "E033", Severity: SeverityError, Name: "Line continuation after block close",
		Explanation:    "A caret continuation follows a closing parenthesis of a block, which does not extend the block as intended.",
		Recommendation: "Restructure the block so the continuation is unnecessary."},
	{Code: "E034", Severity: SeverityError, Name: "Removed command",
		Explanation:    "This command was removed from supported Windows releases and will fail outright.",
		Recommendation: "Replace it with its modern equivalent (see the command's documentation)."},

	// --- Warning (W) ---------------------------------------------------------
	{Code: "W001", Severity: SeverityWarning, Name: "Possible fall-through at end of script",
		Explanation:    "A path from the first executable line can reach the last line without passing through EXIT or GOTO :EOF.",
		Recommendation: "Add an explicit EXIT /B or GOTO :EOF at the end of the relevant path."},
	{Code: "W003", Severity: SeverityWarning, Name: "CALL target could not be resolved",
		Explanation:    "The call-follower could not locate or load the script named by this CALL.",
		Recommendation: "Verify the target path exists and is reachable from this script's directory."},
	{Code: "W004", Severity: SeverityWarning, Name: "Potential infinite loop",
		Explanation:    "A label is followed, on some reachable path, by an unconditional GOTO back to it with no mutation of any variable used in between.",
		Recommendation: "Add a loop-terminating condition, or confirm the loop is intentionally unbounded."},
	{Code: "W005", Severity: SeverityWarning, Name: "Unquoted variable reference",
		Explanation:    "A variable expansion that may contain a space is used without surrounding quotes.",
		Recommendation: "Wrap the expansion in quotes: \"%VAR%\"."},
	{Code: "W013", Severity: SeverityWarning, Name: "Duplicate label definition",
		Explanation:    "The same label is defined more than once; only the first definition is reachable by GOTO.",
		Recommendation: "Rename or remove the duplicate label."},
	{Code: "W014", Severity: SeverityWarning, Name: "Label defined but never referenced",
		Explanation:    "No GOTO or CALL in this file targets this label.",
		Recommendation: "Remove the label, or add the missing reference."},
	{Code: "W018", Severity: SeverityWarning, Name: "Mixed line endings",
		Explanation:    "The file mixes CRLF, LF, and/or lone CR line terminators.",
		Recommendation: "Normalize the file to a single line-ending style."},
	{Code: "W020", Severity: SeverityWarning, Name: "Hardcoded absolute path",
		Explanation:    "A drive-letter-rooted absolute path is used where an environment-relative path would be more portable.",
		Recommendation: "Use %~dp0 or an environment variable instead of a hardcoded drive path."},
	{Code: "W021", Severity: SeverityWarning, Name: "IF comparison without quotes",
		Explanation:    "An IF string comparison does not quote one or both sides, so an empty or space-containing value breaks the syntax.",
		Recommendation: "Quote both sides of the comparison."},
	{Code: "W022", Severity: SeverityWarning, Name: "Overwriting a loop variable inside the loop",
		Explanation:    "A FOR loop body assigns to the same variable the loop uses for iteration.",
		Recommendation: "Use a different variable name inside the loop body."},
	{Code: "W023", Severity: SeverityWarning, Name: "PATH modified without restoring it",
		Explanation:    "PATH is reassigned without saving and restoring the previous value, leaking into the caller's environment when SETLOCAL is absent.",
		Recommendation: "Wrap the change in SETLOCAL/ENDLOCAL, or save and restore the original PATH."},
	{Code: "W024", Severity: SeverityWarning, Name: "Deprecated command",
		Explanation:    "This command still runs but is deprecated and may be removed in a future Windows release.",
		Recommendation: "Replace it with its modern equivalent (see the command's documentation)."},
	{Code: "W025", Severity: SeverityWarning, Name: "Missing error handling after command",
		Explanation:    "A command with an externally visible exit code is not followed by any ERRORLEVEL or conditional check.",
		Recommendation: "Check %ERRORLEVEL% (or use && / ||) after commands whose failure matters."},
	{Code: "W026", Severity: SeverityWarning, Name: "Use of GOTO for structured control flow",
		Explanation:    "A GOTO-based construct reimplements a pattern that CALL with a subroutine label expresses more clearly.",
		Recommendation: "Consider CALL :subroutine instead of GOTO-based branching for this pattern."},

	// --- Style (S) ---------------------------------------------------------
	{Code: "S001", Severity: SeverityStyle, Name: "Missing @ECHO OFF",
		Explanation:    "None of the first three non-blank, non-comment lines disable command echoing.",
		Recommendation: "Add @ECHO OFF near the top of the script."},
	{Code: "S002", Severity: SeverityStyle, Name: "ECHO OFF without leading @",
		Explanation:    "ECHO OFF is used instead of @ECHO OFF, so the ECHO OFF command itself is echoed before it takes effect.",
		Recommendation: "Prefix the command with @: @ECHO OFF."},
	{Code: "S003", Severity: SeverityStyle, Name: "Inconsistent command casing",
		Explanation:    "The same command keyword appears with different letter casing elsewhere in the file.",
		Recommendation: "Pick one casing convention for command keywords and use it throughout."},
	{Code: "S004", Severity: SeverityStyle, Name: "Trailing whitespace",
		Explanation:    "The line has trailing spaces or tabs after its visible content.",
		Recommendation: "Remove the trailing whitespace."},
	{Code: "S005", Severity: SeverityStyle, Name: "Inconsistent line ending on this line",
		Explanation:    "This line's terminator differs from the file's dominant line-ending style.",
		Recommendation: "Normalize this line's ending to match the rest of the file."},
	{Code: "S007", Severity: SeverityStyle, Name: "Non-standard script extension",
		Explanation:    "A file analyzed as a batch script does not use the conventional .bat or .cmd extension.",
		Recommendation: "Rename the file with a .bat or .cmd extension."},
	{Code: "S008", Severity: SeverityStyle, Name: "Tab characters used for indentation",
		Explanation:    "The line is indented with tab characters rather than spaces.",
		Recommendation: "Use spaces for indentation."},
	{Code: "S009", Severity: SeverityStyle, Name: "Inconsistent indentation",
		Explanation:    "Sibling lines inside the same block use different indentation widths.",
		Recommendation: "Align indentation consistently within a block."},
	{Code: "S010", Severity: SeverityStyle, Name: "Dead label",
		Explanation:    "The label is unreachable and also never referenced by any GOTO or CALL.",
		Recommendation: "Remove the label."},
	{Code: "S011", Severity: SeverityStyle, Name: "Line too long",
		Explanation:    "The line exceeds the configured maximum line length.",
		Recommendation: "Break the line up, or raise max_line_length if the length is intentional."},
	{Code: "S012", Severity: SeverityStyle, Name: "Multiple commands on one line without alignment",
		Explanation:    "Several commands are chained with & on one line in a way that hurts readability.",
		Recommendation: "Split chained commands across multiple lines."},
	{Code: "S028", Severity: SeverityStyle, Name: "Redundant parentheses",
		Explanation:    "A parenthesized block wraps a single command with no branching, adding no structural value.",
		Recommendation: "Remove the unnecessary parentheses."},

	// --- Security (SEC) -----------------------------------------------------
	{Code: "SEC001", Severity: SeveritySecurity, Name: "Plaintext credential",
		Explanation:    "A password, API key, or token appears to be hardcoded directly in the script.",
		Recommendation: "Move the credential to a secure store and reference it at runtime."},
	{Code: "SEC002", Severity: SeveritySecurity, Name: "Unsafe temp file path",
		Explanation:    "A fixed, world-writable temp path is used instead of one derived from %TEMP%.",
		Recommendation: "Use a path derived from %TEMP% with a unique component."},
	{Code: "SEC003", Severity: SeveritySecurity, Name: "Insecure use of FTP command script",
		Explanation:    "An ftp -s: command script may itself contain plaintext credentials and is an outdated transfer mechanism.",
		Recommendation: "Use an authenticated, encrypted transfer method instead of ftp."},
	{Code: "SEC004", Severity: SeveritySecurity, Name: "Disabling of security features",
		Explanation:    "The line disables UAC, Windows Defender, or a firewall rule.",
		Recommendation: "Avoid disabling security controls from a script; scope any exception narrowly and document it."},
	{Code: "SEC005", Severity: SeveritySecurity, Name: "Unsafe download and execute",
		Explanation:    "A file is downloaded and then executed without any integrity or signature check.",
		Recommendation: "Verify a checksum or signature before executing a downloaded file."},
	{Code: "SEC006", Severity: SeveritySecurity, Name: "Overly permissive ACL change",
		Explanation:    "An icacls/cacls invocation grants Everyone or Users full control.",
		Recommendation: "Grant the minimum permissions required to the specific principal that needs them."},
	{Code: "SEC007", Severity: SeveritySecurity, Name: "Command injection via unquoted variable",
		Explanation:    "An externally influenced variable is interpolated directly into a command line without quoting or validation.",
		Recommendation: "Quote and validate externally influenced input before using it in a command."},
	{Code: "SEC011", Severity: SeveritySecurity, Name: "Use of deprecated cipher or protocol flag",
		Explanation:    "A command-line flag requests a weak cipher, SSLv3/TLS 1.0, or an otherwise deprecated protocol.",
		Recommendation: "Use the tool's current secure default rather than forcing a legacy protocol."},
	{Code: "SEC012", Severity: SeveritySecurity, Name: "Credential passed on command line",
		Explanation:    "A password is passed as a plain command-line argument, which is visible in process listings.",
		Recommendation: "Use a credential file, prompt, or vault reference instead of a command-line argument."},
	{Code: "SEC013", Severity: SeveritySecurity, Name: "World-writable share creation",
		Explanation:    "A `net share` invocation grants Everyone write access.",
		Recommendation: "Restrict the share's ACL to the specific principals that need it."},
	{Code: "SEC014", Severity: SeveritySecurity, Name: "Disabling of script signing enforcement",
		Explanation:    "The line relaxes an execution-policy or signing check for a subsequently invoked script.",
		Recommendation: "Keep signing enforcement on and sign the script instead."},
	{Code: "SEC015", Severity: SeveritySecurity, Name: "Use of runas with embedded credentials",
		Explanation:    "A runas invocation embeds a plaintext password via /savecred or similar.",
		Recommendation: "Prompt for credentials interactively rather than embedding them."},
	{Code: "SEC016", Severity: SeveritySecurity, Name: "Registry run-key persistence",
		Explanation:    "The script writes to a Run/RunOnce registry key, a common persistence mechanism worth flagging for review.",
		Recommendation: "Confirm this persistence mechanism is intentional and documented."},
	{Code: "SEC017", Severity: SeveritySecurity, Name: "Scheduled task created with elevated privileges",
		Explanation:    "schtasks creates a task configured to run as SYSTEM or an administrative account.",
		Recommendation: "Run the task with the least privilege that accomplishes its purpose."},
	{Code: "SEC018", Severity: SeveritySecurity, Name: "Disabling of Windows Update",
		Explanation:    "The script disables the Windows Update service or scheduled task.",
		Recommendation: "Avoid disabling update mechanisms from an automation script."},
	{Code: "SEC019", Severity: SeveritySecurity, Name: "Execution of content from a temp directory",
		Explanation:    "A binary or script located in a temp directory is executed directly.",
		Recommendation: "Move verified content out of a temp directory before executing it."},
	{Code: "SEC020", Severity: SeveritySecurity, Name: "Cleartext network listener",
		Explanation:    "The script starts a listener (e.g. via netcat-like tooling) with no transport encryption.",
		Recommendation: "Use an encrypted transport for any network listener started by automation."},
	{Code: "SEC021", Severity: SeveritySecurity, Name: "Disabling of audit logging",
		Explanation:    "The line clears or disables the Windows event log or auditing policy.",
		Recommendation: "Avoid disabling audit logging from automation; scope and document any exception."},
	{Code: "SEC022", Severity: SeveritySecurity, Name: "Use of an unsigned remote script",
		Explanation:    "A script is downloaded and executed from a remote URL without verifying it is signed.",
		Recommendation: "Verify the downloaded script's signature before executing it."},
	{Code: "SEC023", Severity: SeveritySecurity, Name: "Weak random source for a security-relevant value",
		Explanation:    "%RANDOM% is used to generate a value that appears to be used as a credential or token.",
		Recommendation: "Use a cryptographically secure random source for security-relevant values."},
	{Code: "SEC024", Severity: SeveritySecurity, Name: "Credential written to a log file",
		Explanation:    "Output containing what looks like a credential is redirected to a file.",
		Recommendation: "Redact credentials before logging command output."},

	// --- Performance (P) -----------------------------------------------------
	{Code: "P001", Severity: SeverityPerformance, Name: "Repeated expansion of the same variable in a loop",
		Explanation:    "The same %VAR%/!VAR! expansion is recomputed on every loop iteration where its value does not change.",
		Recommendation: "Hoist the expansion to a variable set once before the loop."},
	{Code: "P002", Severity: SeverityPerformance, Name: "Duplicated code block",
		Explanation:    "Two non-overlapping runs of at least 3 identical non-blank, non-comment lines appear in the file.",
		Recommendation: "Factor the duplicated block into a subroutine called from both locations."},
	{Code: "P003", Severity: SeverityPerformance, Name: "SETLOCAL with no subsequent SET",
		Explanation:    "A SETLOCAL is established but no variable is ever set within its scope.",
		Recommendation: "Remove the unnecessary SETLOCAL."},
	{Code: "P004", Severity: SeverityPerformance, Name: "Delayed expansion enabled but unused",
		Explanation:    "SETLOCAL ENABLEDELAYEDEXPANSION is active but no !VAR! expansion appears before the matching ENDLOCAL.",
		Recommendation: "Drop ENABLEDELAYEDEXPANSION if delayed expansion is not actually needed."},
	{Code: "P005", Severity: SeverityPerformance, Name: "ENDLOCAL with no matching SETLOCAL",
		Explanation:    "An ENDLOCAL appears with no open SETLOCAL scope to close.",
		Recommendation: "Remove the stray ENDLOCAL, or add the missing SETLOCAL."},
	{Code: "P006", Severity: SeverityPerformance, Name: "SETLOCAL without matching ENDLOCAL before EXIT",
		Explanation:    "A SETLOCAL scope is still open when the script exits.",
		Recommendation: "Add ENDLOCAL before the EXIT, or rely on implicit cleanup deliberately and document it."},
	{Code: "P007", Severity: SeverityPerformance, Name: "Repeated external process invocation in a loop",
		Explanation:    "An external command whose output does not vary is invoked fresh on every loop iteration.",
		Recommendation: "Invoke the command once and cache the result before the loop."},
	{Code: "P008", Severity: SeverityPerformance, Name: "Delayed expansion used without being enabled",
		Explanation:    "A !VAR! expansion appears but no enclosing SETLOCAL ENABLEDELAYEDEXPANSION is in effect.",
		Recommendation: "Add SETLOCAL ENABLEDELAYEDEXPANSION before using !VAR! syntax."},
	{Code: "P009", Severity: SeverityPerformance, Name: "Unnecessary CALL to a script in the same process",
		Explanation:    "CALL is used where a direct invocation would avoid spawning a nested cmd.exe interpretation pass.",
		Recommendation: "Invoke the target directly if a nested CALL context is not actually required."},
	{Code: "P010", Severity: SeverityPerformance, Name: "Inefficient file existence loop",
		Explanation:    "A loop polls for file existence with no delay, burning CPU while waiting.",
		Recommendation: "Insert a delay (e.g. via timeout) between existence checks."},
	{Code: "P011", Severity: SeverityPerformance, Name: "Large FOR /F over an external command every iteration",
		Explanation:    "A FOR /F loop re-invokes an external command as its input source once per outer iteration.",
		Recommendation: "Capture the command's output once outside the loop."},
	{Code: "P024", Severity: SeverityPerformance, Name: "SETLOCAL immediately followed by ENDLOCAL",
		Explanation:    "An ENDLOCAL on the very next non-blank, non-comment line closes the scope before it can do anything.",
		Recommendation: "Remove both, or add the intended statements between them."},
	{Code: "P025", Severity: SeverityPerformance, Name: "Redundant CD before an absolute-path command",
		Explanation:    "CD changes directory immediately before a command that is given an absolute path and does not need it.",
		Recommendation: "Remove the redundant CD, or use a relative path to make it meaningful."},
	{Code: "P026", Severity: SeverityPerformance, Name: "Nested SETLOCAL depth exceeds a reasonable bound",
		Explanation:    "More than three SETLOCAL scopes are nested at once, which is easy to lose track of and costly to unwind.",
		Recommendation: "Flatten nested scopes where SETLOCAL is not establishing independent state."},
}
