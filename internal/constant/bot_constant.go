package constant

const (
	// Welcome / consent
	MsgWelcome = `Olá! 👋 Sou o assistente virtual do escritório.

Como posso ajudar?

1 - Consultar um processo existente
2 - Falar sobre um processo novo

Digite o número da opção desejada.`

	MsgWelcomeInvalid = `Não entendi. 🤔 Digite *1* para consultar um processo existente ou *2* para falar sobre um processo novo.`

	MsgConsentRequest = `Para continuar, preciso da sua autorização para consultar e tratar seus dados pessoais, conforme a LGPD.

Você autoriza? (sim/não)`

	MsgConsentInvalid = `Por favor, responda *sim* para autorizar ou *não* para encerrar o atendimento.`

	MsgConsentDeclined = `Tudo bem, nenhum dado foi consultado. Se mudar de ideia, é só mandar uma mensagem. Até logo! 👋`

	// Document capture
	MsgAskDocument = `Certo! Informe o CPF ou CNPJ do titular dos processos (somente números).`

	MsgNoProcessesFound = `Não encontrei nenhum processo para esse documento. 😕

Se quiser tentar com outro documento ou falar com um advogado, é só mandar uma mensagem. Até logo!`

	MsgGatewayError = `Estou com dificuldade para consultar o sistema de processos agora. 😓 Pode tentar novamente em instantes?`

	// Menus
	MsgChooseOption = `Digite o número de uma das opções:`

	MsgInvalidMenuOption = `Opção inválida. 🤔`

	MenuLabelActive      = "Ver processos em andamento"
	MenuLabelFinalized   = "Ver processos finalizados"
	MenuLabelPdfSummary  = "Receber um relatório em PDF de todos os processos"
	MenuLabelNewDocument = "Consultar outro documento"
	MenuLabelEnd         = "Encerrar atendimento"

	// Process lists
	MsgFoundProcesses = `Encontrei %d processo(s) para esse documento. ✅`

	MsgActiveListHeader    = `📂 *Processos em andamento:*`
	MsgFinalizedListHeader = `📁 *Processos finalizados:*`

	MsgProcessListFooter = `Digite o número do processo para ver os detalhes, *pdf* para o relatório completo ou *menu* para recomeçar.`

	MsgYesNoInvalid = `Responda *sim* ou *não*, por favor.`

	MsgProcessNotFound = `Não encontrei os detalhes desse processo no sistema. Escolha outro número da lista, por favor.`

	// PDF
	MsgPdfConfirm = `Deseja receber um relatório em PDF com os detalhes desse processo? (sim/não)`

	MsgPdfSummaryConfirm = `Deseja receber um relatório em PDF com todos os seus processos? (sim/não)`

	MsgPdfFailed = `Não consegui gerar o relatório agora. 😓 Pode tentar novamente?`

	MsgPdfCaption = `Aqui está o seu relatório! 📄`

	// New process / hand-off
	MsgAskNewProcessProfile = `Conte um pouco sobre o seu caso: o que aconteceu e o que você precisa? Pode escrever com suas palavras.`

	MsgHandoffConfirmed = `Obrigado! ✅ Um de nossos advogados recebeu o seu relato e entrará em contato em breve por este mesmo número.`

	MsgHumanHandoff = `Entendido! Um de nossos advogados foi avisado e vai assumir esta conversa em breve. 🙂`

	// Terminal / errors
	MsgGoodbye = `Atendimento encerrado. Obrigado pelo contato e até logo! 👋`

	MsgContextLost = `Parece que perdi o contexto da nossa conversa. Vamos recomeçar pela consulta.`

	MsgInternalError = `Ops, algo deu errado por aqui. 😓 Pode repetir a última mensagem?`
)

// Global escape hatches, matched case-insensitively against the whole
// message regardless of the current stage.
var (
	ResetKeywords = []string{"menu", "inicio", "início", "reiniciar", "start", "recomeçar", "recomecar"}

	HumanKeywords = []string{"atendente", "advogado", "advogada", "humano", "falar com alguem", "falar com alguém"}
)

// Free-text yes/no synonyms accepted at confirmation stages.
var (
	AffirmativeWords = []string{"1", "sim", "s", "yes", "claro", "pode", "quero", "aceito", "autorizo", "ok"}

	NegativeWords = []string{"2", "nao", "não", "n", "no", "negativo", "agora nao", "agora não"}
)
